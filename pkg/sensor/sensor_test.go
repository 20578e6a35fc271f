package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danpilch/diskspace/pkg/diskspace"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newSampler(t *testing.T, path string, p diskspace.ProbeFunc) *diskspace.Sampler {
	t.Helper()
	s, err := diskspace.New(
		diskspace.Config{Path: path, MinInterval: time.Minute, DisplayUnit: diskspace.Gibibytes},
		diskspace.WithProber(p),
		diskspace.WithErrorSink(diskspace.ErrorSinkFunc(func(*diskspace.ProbeError) {})),
	)
	if err != nil {
		t.Fatalf("diskspace.New: %v", err)
	}
	return s
}

func fixed(u diskspace.Usage) diskspace.ProbeFunc {
	return func(string) (diskspace.Usage, error) { return u, nil }
}

func TestSensorUpdate(t *testing.T) {
	s := New("Media", "", newSampler(t, "/media", fixed(diskspace.Usage{Total: 100, Used: 40, Free: 60})))

	r := s.Update(t0)
	if r.Name != "Disk Space Media" {
		t.Errorf("unexpected name %q", r.Name)
	}
	if r.Icon != DefaultIcon {
		t.Errorf("expected default icon, got %q", r.Icon)
	}
	if r.State != 60 {
		t.Errorf("expected state to be free bytes, got %d", r.State)
	}
	want := Attributes{Total: 100, Used: 40, Free: 60, PercentageFree: 60.0}
	if r.Attributes != want {
		t.Errorf("attributes = %+v, want %+v", r.Attributes, want)
	}
	if r.NativeUnit != "B" || r.SuggestedUnit != diskspace.Gibibytes || r.DeviceClass != "data_size" {
		t.Errorf("unexpected units/class: %+v", r)
	}
	if r.Path != "/media" || !r.SampledAt.Equal(t0) {
		t.Errorf("unexpected path/time: %+v", r)
	}
}

func TestSensorCurrentBeforeAndAfterUpdate(t *testing.T) {
	s := New("Root", "mdi:disk", newSampler(t, "/", fixed(diskspace.Usage{Total: 10, Used: 5, Free: 5})))

	if _, ok := s.Current(); ok {
		t.Fatal("expected no reading before the first update")
	}
	s.Update(t0)
	r, ok := s.Current()
	if !ok || r.State != 5 || r.Icon != "mdi:disk" {
		t.Fatalf("unexpected current reading: %+v ok=%v", r, ok)
	}
}

func TestSensorDegradedReading(t *testing.T) {
	failing := diskspace.ProbeFunc(func(string) (diskspace.Usage, error) {
		return diskspace.Usage{}, errors.New("boom")
	})
	r := New("Gone", "", newSampler(t, "/gone", failing)).Update(t0)
	if !r.Degraded || r.State != 0 || r.Attributes != (Attributes{}) {
		t.Fatalf("expected degraded zero reading, got %+v", r)
	}
}

func TestAttributesMap(t *testing.T) {
	m := Attributes{Total: 3, Used: 1, Free: 2, PercentageFree: 66.7}.Map()
	if len(m) != 4 || m["percentage_free"] != 66.7 || m["total"] != uint64(3) {
		t.Fatalf("unexpected attribute map: %v", m)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(nil)
	a := New("a", "", newSampler(t, "/a", fixed(diskspace.Usage{Total: 10, Used: 1, Free: 9})))
	b := New("b", "", newSampler(t, "/b", fixed(diskspace.Usage{Total: 10, Used: 8, Free: 2})))

	if err := r.Register(a); err != nil {
		t.Fatalf("Register(a): %v", err)
	}
	if err := r.Register(b); err != nil {
		t.Fatalf("Register(b): %v", err)
	}
	if err := r.Register(New("a", "", a.Sampler())); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	if r.GetByName("b") != b || r.GetByName("c") != nil {
		t.Fatal("GetByName returned the wrong sensor")
	}

	readings := r.UpdateAll(context.Background(), t0)
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if readings[0].State != 9 || readings[1].State != 2 {
		t.Fatalf("readings out of order: %+v", readings)
	}
}
