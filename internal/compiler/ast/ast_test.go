package ast

import "testing"

func TestNewProgramSeedsGenericClasses(t *testing.T) {
	program := NewProgram()
	tests := []struct {
		name  string
		arity int
	}{
		{"List", 1},
		{"Stack", 1},
		{"HashSet", 1},
		{"Dictionary", 2},
		{"SortedDictionary", 2},
	}
	for _, tt := range tests {
		klass, ok := program.TryLookup(tt.name).(*Class)
		if !ok {
			t.Fatalf("TryLookup(%q) = nil, want built-in class", tt.name)
		}
		if klass.TypeParamCount != tt.arity {
			t.Errorf("%s arity = %d, want %d", tt.name, klass.TypeParamCount, tt.arity)
		}
	}
	if len(program.Types) != 0 {
		t.Errorf("built-ins must not appear in Types, got %d entries", len(program.Types))
	}
}

func TestProgramAddAndLookup(t *testing.T) {
	program := NewProgram()
	first := &Class{Name: "A"}
	program.Add(first)
	program.Add(&Enum{Name: "E"})
	if len(program.Types) != 2 {
		t.Fatalf("Types = %d, want 2", len(program.Types))
	}
	if program.TryLookup("A") != TypeDecl(first) {
		t.Error("TryLookup(A) did not return the added class")
	}
	if program.TryLookup("Missing") != nil {
		t.Error("TryLookup(Missing) should be nil")
	}
	// the first declaration keeps the lookup slot
	program.Add(&Class{Name: "A", Line: 99})
	if program.TryLookup("A") != TypeDecl(first) {
		t.Error("duplicate Add displaced the original")
	}
}

func TestLoopBreakMarker(t *testing.T) {
	loops := []Loop{&While{}, &DoWhile{}, &For{}, &Foreach{}}
	for _, loop := range loops {
		loop.SetHasBreak()
		if !loop.(interface{ Broken() bool }).Broken() {
			t.Errorf("%T: Broken() = false after SetHasBreak", loop)
		}
	}
}

func TestStringers(t *testing.T) {
	if VisPrivate.String() != "private" || VisPublic.String() != "public" {
		t.Error("Visibility.String() wrong")
	}
	if CallNormal.String() != "normal" || CallOverride.String() != "override" {
		t.Error("CallKind.String() wrong")
	}
}
