package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/samuelsmith442/fundpool/internal/model"
)

func TestJsonlJournalAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events", "ledger.jsonl")
	sink := NewJsonlJournal(path)

	first := model.LedgerEvent{
		Kind:        model.EventDeposit,
		Account:     "0x0000000000000000000000000000000000000001",
		Amount:      "100000000000000000",
		PoolBalance: "100000000000000000",
		FunderCount: 1,
		RecordedAt:  "2026-01-01T00:00:00Z",
	}
	second := model.LedgerEvent{
		Kind:        model.EventWithdraw,
		Account:     "0x00000000000000000000000000000000000000aa",
		Amount:      "100000000000000000",
		PoolBalance: "0",
		FunderCount: 0,
		RecordedAt:  "2026-01-01T00:01:00Z",
	}

	if err := sink.Record([]model.LedgerEvent{first}); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if err := sink.Record([]model.LedgerEvent{second}); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var got []model.LedgerEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event model.LedgerEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		got = append(got, event)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	want := []model.LedgerEvent{first, second}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("journal mismatch: %+v != %+v", got, want)
	}
}

func TestJsonlJournalSkipsEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	sink := NewJsonlJournal(path)

	if err := sink.Record(nil); err != nil {
		t.Fatalf("empty record failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty batch should not create the file")
	}
}

type failingJournal struct{ calls int }

func (f *failingJournal) Record([]model.LedgerEvent) error {
	f.calls++
	return os.ErrPermission
}

type countingJournal struct{ calls int }

func (c *countingJournal) Record([]model.LedgerEvent) error {
	c.calls++
	return nil
}

func TestMultiStopsAtFirstFailure(t *testing.T) {
	failing := &failingJournal{}
	counting := &countingJournal{}
	sinks := Multi{failing, counting}

	if err := sinks.Record([]model.LedgerEvent{{Kind: model.EventDeposit}}); err == nil {
		t.Fatalf("expected error from failing sink")
	}
	if failing.calls != 1 || counting.calls != 0 {
		t.Fatalf("fan-out order wrong: failing %d, counting %d", failing.calls, counting.calls)
	}
}
