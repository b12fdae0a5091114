package analytics

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLogTracker_EmitsEventField(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	prev := logrus.GetLevel()
	logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetLevel(prev)

	params := Params{"search_query": "coffee"}
	LogTracker{}.Track(context.Background(), EventGenerateNames, params)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry")
	}
	if entry.Data["event"] != EventGenerateNames {
		t.Fatalf("event = %v", entry.Data["event"])
	}
	if entry.Data["search_query"] != "coffee" {
		t.Fatalf("params missing: %+v", entry.Data)
	}
	if _, ok := params["event"]; ok {
		t.Fatal("Track must not mutate caller params")
	}
}

func TestNop(t *testing.T) {
	var tr Tracker = Nop{}
	tr.Track(context.Background(), EventDomainCheck, nil)
}
