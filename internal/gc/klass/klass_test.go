package klass

import "testing"

// buildHierarchy constructs a small test hierarchy:
//
//	Object
//	├── String
//	└── Number
//	    └── Integer
func buildHierarchy() (object, str, number, integer *Klass) {
	object = New("java.lang.Object", nil)
	str = New("java.lang.String", object)
	number = New("java.lang.Number", object)
	integer = New("java.lang.Integer", number)
	return
}

// TestIsSubtypeOf tests the supertype-chain walk for scalar types.
func TestIsSubtypeOf(t *testing.T) {
	object, str, number, integer := buildHierarchy()

	tests := []struct {
		name string
		k    *Klass
		of   *Klass
		want bool
	}{
		{name: "reflexive", k: str, of: str, want: true},
		{name: "direct supertype", k: str, of: object, want: true},
		{name: "transitive supertype", k: integer, of: object, want: true},
		{name: "intermediate supertype", k: integer, of: number, want: true},
		{name: "unrelated siblings", k: str, of: number, want: false},
		{name: "supertype is not subtype", k: object, of: str, want: false},
		{name: "nil other", k: str, of: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.k.IsSubtypeOf(tt.of); got != tt.want {
				t.Errorf("IsSubtypeOf(%s, %s) = %v, want %v", tt.k, tt.of, got, tt.want)
			}
		})
	}
}

// TestArrayCovariance tests the covariant array subtype rule: A[] <= B[] iff A <= B.
func TestArrayCovariance(t *testing.T) {
	object, str, number, _ := buildHierarchy()

	objectArr := NewArray(object)
	strArr := NewArray(str)
	numberArr := NewArray(number)

	tests := []struct {
		name string
		k    *Klass
		of   *Klass
		want bool
	}{
		{name: "String[] <= Object[]", k: strArr, of: objectArr, want: true},
		{name: "Object[] not <= String[]", k: objectArr, of: strArr, want: false},
		{name: "String[] not <= Number[]", k: strArr, of: numberArr, want: false},
		{name: "reflexive array", k: strArr, of: strArr, want: true},
		{name: "array not <= scalar", k: strArr, of: object, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.k.IsSubtypeOf(tt.of); got != tt.want {
				t.Errorf("IsSubtypeOf(%s, %s) = %v, want %v", tt.k, tt.of, got, tt.want)
			}
		})
	}
}

// TestExternalName tests diagnostic naming, including derived array names.
func TestExternalName(t *testing.T) {
	object, str, _, _ := buildHierarchy()

	if got := str.ExternalName(); got != "java.lang.String" {
		t.Errorf("ExternalName() = %q, want %q", got, "java.lang.String")
	}
	arr := NewArray(object)
	if got := arr.ExternalName(); got != "java.lang.Object[]" {
		t.Errorf("array ExternalName() = %q, want %q", got, "java.lang.Object[]")
	}
	if !arr.IsArray() {
		t.Error("IsArray() = false for array klass")
	}
	if arr.ElementKlass() != object {
		t.Error("ElementKlass() did not return the element descriptor")
	}
	if object.ElementKlass() != nil {
		t.Error("ElementKlass() non-nil for scalar klass")
	}
}
