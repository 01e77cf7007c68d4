package oracle

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
)

func TestStaticAggregatorRead(t *testing.T) {
	agg := NewStaticAggregator(uint256.NewInt(200_000_000_000), 8)

	rate, err := agg.Read(context.Background())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !rate.Value.Eq(uint256.NewInt(200_000_000_000)) {
		t.Fatalf("answer mismatch: %s", rate.Value)
	}
	if rate.Decimals != 8 {
		t.Fatalf("decimals mismatch: %d", rate.Decimals)
	}
	if rate.Version != 1 {
		t.Fatalf("version mismatch: %d", rate.Version)
	}
}

func TestStaticAggregatorUpdateBumpsVersion(t *testing.T) {
	agg := NewStaticAggregator(uint256.NewInt(100), 8)

	agg.UpdateAnswer(uint256.NewInt(250))
	agg.UpdateAnswer(uint256.NewInt(300))

	rate, err := agg.Read(context.Background())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !rate.Value.Eq(uint256.NewInt(300)) {
		t.Fatalf("answer mismatch: %s", rate.Value)
	}
	if rate.Version != 3 {
		t.Fatalf("version should advance per update: %d", rate.Version)
	}

	version, err := agg.Version(context.Background())
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if version != 3 {
		t.Fatalf("version mismatch: %d", version)
	}
}

func TestStaticAggregatorReadReturnsCopy(t *testing.T) {
	agg := NewStaticAggregator(uint256.NewInt(100), 8)

	rate, err := agg.Read(context.Background())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	rate.Value.SetUint64(999)

	again, err := agg.Read(context.Background())
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if !again.Value.Eq(uint256.NewInt(100)) {
		t.Fatalf("caller mutation leaked into aggregator: %s", again.Value)
	}
}
