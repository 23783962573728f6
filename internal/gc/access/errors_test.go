package access

import (
	"testing"

	"github.com/kolkov/gcbarrier/internal/gc/klass"
)

// TestErrorMessages pins the exact diagnostic texts. The two arraycopy
// shapes carry different debugging meaning and must not drift into each
// other.
func TestErrorMessages(t *testing.T) {
	object := klass.New("java.lang.Object", nil)
	str := klass.New("java.lang.String", object)
	b := klass.New("example.B", object)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "null store",
			err:  newNullStore(str, 3),
			want: "arraycopy: can not copy null values into java.lang.String[]",
		},
		{
			name: "whole-array mismatch",
			err:  newWholeArrayMismatch(b, str, 0),
			want: "arraycopy: type mismatch: can not copy example.B[] into java.lang.String[]",
		},
		{
			name: "element mismatch",
			err:  newElementMismatch(object, b, str, 2),
			want: "arraycopy: element type mismatch: can not cast one of the elements" +
				" of java.lang.Object[], a example.B, to the type of the destination array," +
				" java.lang.String",
		},
		{
			name: "single store mismatch",
			err:  &ArrayStoreError{Elem: b, Bound: str, Index: 0},
			want: "store: type mismatch: can not store example.B into java.lang.String[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q\nwant      %q", got, tt.want)
			}
		})
	}
}

// TestWholeShapeDetection tests the shape predicate the message split keys on.
func TestWholeShapeDetection(t *testing.T) {
	object := klass.New("java.lang.Object", nil)
	str := klass.New("java.lang.String", object)
	b := klass.New("example.B", object)

	if !newWholeArrayMismatch(b, str, 0).Whole() {
		t.Error("whole-array error not detected as whole")
	}
	if newElementMismatch(object, b, str, 1).Whole() {
		t.Error("element error detected as whole")
	}
}
