package notice

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestMulti(t *testing.T) {
	var a, b Recorder
	n := Multi(&a, nil, &b)

	want := []Notice{
		{Title: "Added to cart", Description: "A has been added to your cart"},
		{Title: "Cart cleared", Description: "All items have been removed from your cart"},
	}
	for _, w := range want {
		n.Notify(w)
	}

	if diff := cmp.Diff(want, a.Notices()); diff != "" {
		t.Fatalf("first recorder (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, b.Notices()); diff != "" {
		t.Fatalf("second recorder (-want +got):\n%s", diff)
	}
}

func TestRecorderEmpty(t *testing.T) {
	var r Recorder
	if got := r.Notices(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestLog(t *testing.T) {
	log, hook := test.NewNullLogger()

	Log(log).Notify(Notice{Title: "Item removed", Description: "A has been removed from your cart"})

	e := hook.LastEntry()
	if e == nil {
		t.Fatal("expected a log entry")
	}
	if e.Level != logrus.InfoLevel || e.Data["title"] != "Item removed" {
		t.Fatalf("unexpected entry: level[%s] data[%v]", e.Level, e.Data)
	}
}
