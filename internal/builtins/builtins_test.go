package builtins

import (
	"bytes"
	"testing"

	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/interp"
)

func newTestInterp(out *bytes.Buffer) *interp.Interp {
	sm := diag.New("<test>", nil)
	return interp.New(sm, "<test>", out, New(), nil)
}

func TestCallAbs(t *testing.T) {
	tests := []struct {
		name string
		in   interp.Value
		want interp.Value
	}{
		{"negative int", interp.IntValue(-5), interp.IntValue(5)},
		{"positive int", interp.IntValue(5), interp.IntValue(5)},
		{"negative float", interp.FloatValue(-1.5), interp.FloatValue(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exc := callAbs(tt.in)
			if exc != nil {
				t.Fatalf("unexpected exception: %v", exc.Value)
			}
			if !interp.Equal(got, tt.want) {
				t.Errorf("abs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCallLength(t *testing.T) {
	v := interp.NewVector([]interp.Value{interp.IntValue(1), interp.IntValue(2), interp.IntValue(3)})
	got, exc := callLength(v)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc.Value)
	}
	if got != interp.IntValue(3) {
		t.Errorf("length() = %v, want 3", got)
	}

	s := interp.StringValue("héllo")
	got, exc = callLength(s)
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc.Value)
	}
	if got != interp.IntValue(5) {
		t.Errorf("length(%q) = %v, want 5 (rune count, not byte count)", s, got)
	}
}

func TestCallSortNatural(t *testing.T) {
	v := interp.NewVector([]interp.Value{
		interp.StringValue("item10"),
		interp.StringValue("item2"),
		interp.StringValue("item1"),
	})
	if _, exc := callSort(v); exc != nil {
		t.Fatalf("unexpected exception: %v", exc.Value)
	}
	want := []string{"item1", "item2", "item10"}
	for i, w := range want {
		if string(v.Elements[i].(interp.StringValue)) != w {
			t.Errorf("sort()[%d] = %v, want %v", i, v.Elements[i], w)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dict := interp.NewDict()
	dict.Set(interp.StringValue("name"), interp.StringValue("flame"))
	dict.Set(interp.StringValue("count"), interp.IntValue(3))

	encoded, exc := jsonEncode([]interp.Value{dict})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc.Value)
	}

	decoded, exc := jsonDecode([]interp.Value{encoded})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc.Value)
	}
	got, ok := decoded.(*interp.DictValue)
	if !ok {
		t.Fatalf("decoded value is %T, want *interp.DictValue", decoded)
	}
	name, ok := got.Get(interp.StringValue("name"))
	if !ok || name != interp.StringValue("flame") {
		t.Errorf("decoded[name] = %v, ok=%v, want flame", name, ok)
	}
	count, ok := got.Get(interp.StringValue("count"))
	if !ok || count != interp.IntValue(3) {
		t.Errorf("decoded[count] = %v, ok=%v, want 3", count, ok)
	}
}

func TestCallImportWithoutImporterFails(t *testing.T) {
	var buf bytes.Buffer
	ip := newTestInterp(&buf)
	_, exc := callImport(ip, []interp.Value{interp.StringValue("some/module")})
	if exc == nil {
		t.Fatal("expected an exception when no Importer is configured")
	}
	if exc.TypeName != "NotImplemented" {
		t.Errorf("TypeName = %q, want NotImplemented", exc.TypeName)
	}
}

func TestCallPrintWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	ip := newTestInterp(&buf)
	if _, exc := callPrint(ip, []interp.Value{interp.StringValue("hi"), interp.IntValue(1)}, true); exc != nil {
		t.Fatalf("unexpected exception: %v", exc.Value)
	}
	if buf.String() != "hi 1\n" {
		t.Errorf("println output = %q, want %q", buf.String(), "hi 1\n")
	}
}
