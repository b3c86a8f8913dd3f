package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/uptimealert/internal/domain"
)

func TestHTTPChecker_StatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("want GET, got %s", r.Method)
		}
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if out.Failure != FailureNone || Classify(out) != domain.StateUp {
		t.Fatalf("want up, got %+v", out)
	}
	if out.StatusCode != 200 {
		t.Fatalf("want status 200, got %d", out.StatusCode)
	}
	if out.Latency < 0 {
		t.Fatalf("latency should be >= 0, got %v", out.Latency)
	}
}

func TestHTTPChecker_Status500(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if Classify(out) != domain.StateDown || out.Failure != FailureStatus {
		t.Fatalf("want status failure, got %+v", out)
	}
	if out.Reason() != "non-2xx-status(500)" {
		t.Fatalf("unexpected reason %q", out.Reason())
	}
	if !strings.HasPrefix(out.Detail, "500") {
		t.Fatalf("want detail to start with 500, got %q", out.Detail)
	}
}

func TestHTTPChecker_TimeoutClassifiesDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50 * time.Millisecond)
	out := chk.Check(context.Background(), s.URL)
	if out.Failure != FailureTimeout {
		t.Fatalf("want timeout, got %+v", out)
	}
	if out.StatusCode != 0 || out.Reason() != "timeout" {
		t.Fatalf("want status 0 and reason timeout, got %+v", out)
	}
	if Classify(out) != domain.StateDown {
		t.Fatalf("timeout must classify down")
	}
}

func TestHTTPChecker_ConnectionRefused(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	out := NewHTTPChecker(time.Second).Check(context.Background(), url)
	if out.Failure != FailureConnection || out.Reason() != "connection-error" {
		t.Fatalf("want connection-error, got %+v", out)
	}
	if out.Detail == "" {
		t.Fatalf("want non-empty detail")
	}
}

func TestHTTPChecker_BadURL(t *testing.T) {
	out := NewHTTPChecker(time.Second).Check(context.Background(), "http://[::1")
	if out.Failure != FailureOther {
		t.Fatalf("want other, got %+v", out)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		out  Outcome
		want domain.State
	}{
		{Outcome{StatusCode: 200}, domain.StateUp},
		{Outcome{StatusCode: 204}, domain.StateUp},
		{Outcome{StatusCode: 299}, domain.StateUp},
		{Outcome{StatusCode: 300, Failure: FailureStatus}, domain.StateDown},
		{Outcome{StatusCode: 301}, domain.StateDown},
		{Outcome{StatusCode: 404, Failure: FailureStatus}, domain.StateDown},
		{Outcome{StatusCode: 199}, domain.StateDown},
		{Outcome{StatusCode: 0}, domain.StateDown},
		{Outcome{Failure: FailureTimeout}, domain.StateDown},
		{Outcome{Failure: FailureConnection}, domain.StateDown},
	}
	for _, c := range cases {
		if got := Classify(c.out); got != c.want {
			t.Fatalf("Classify(%+v)=%v want %v", c.out, got, c.want)
		}
	}
}
