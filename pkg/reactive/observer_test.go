package reactive

import "testing"

func TestObserveIsIdempotent(t *testing.T) {
	obj := NewObject(map[string]any{"a": 1})
	ob1 := Observe(obj)
	ob2 := Observe(obj)

	if ob1 == nil {
		t.Fatal("expected an observer")
	}
	if ob1 != ob2 {
		t.Error("observing twice must return the same observer")
	}
}

func TestObserveNonContainer(t *testing.T) {
	if ob := Observe(42); ob != nil {
		t.Error("primitives must not be observed")
	}
	if ob := Observe(nil); ob != nil {
		t.Error("nil must not be observed")
	}
	if ob := Observe(map[string]any{}); ob != nil {
		t.Error("raw maps must not be observed; wrap them in an Object")
	}
}

type opaqueNode struct{}

func (opaqueNode) OpaqueValue() {}

func TestObserveSkipsOpaqueValues(t *testing.T) {
	if ob := Observe(opaqueNode{}); ob != nil {
		t.Error("opaque values must never be treated as model data")
	}
}

func TestToggleObservingGatesAttachment(t *testing.T) {
	ToggleObserving(false)
	obj := NewObject(map[string]any{"a": 1})
	if ob := Observe(obj); ob != nil {
		t.Error("observation disabled: attach must be skipped")
	}
	ToggleObserving(true)
	if ob := Observe(obj); ob == nil {
		t.Error("observation re-enabled: attach must work")
	}
}

func TestObserveWalksNestedContainers(t *testing.T) {
	inner := NewObject(map[string]any{"x": 1})
	arr := NewArray(NewObject(map[string]any{"y": 2}))
	obj := NewObject(map[string]any{"inner": inner, "list": arr})

	Observe(obj)

	if inner.ob == nil {
		t.Error("nested object must be observed")
	}
	if arr.ob == nil {
		t.Error("nested array must be observed")
	}
	if arr.Get(0).(*Object).ob == nil {
		t.Error("array elements must be observed")
	}
}

func TestObserveRootCountsUsage(t *testing.T) {
	obj := NewObject(map[string]any{"a": 1})
	ob := ObserveRoot(obj)
	if ob.rootCount != 1 {
		t.Errorf("expected rootCount 1, got %d", ob.rootCount)
	}
	ObserveRoot(obj)
	if ob.rootCount != 2 {
		t.Errorf("expected rootCount 2, got %d", ob.rootCount)
	}
}
