package interp

import (
	"testing"

	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/lexer"
	"github.com/StarSignalAnt/qlang/internal/parser"
)

// validate parses src and runs it through the validator, returning the
// collector so tests can inspect what was reported.
func validate(t *testing.T, src string, register ...string) (*Validator, *errors.Collector) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(src)
	prog := parser.New(toks, collector).Parse()
	if collector.HasErrors() {
		t.Fatalf("parse errors: %s", collector.List(errors.ListOptions{}))
	}
	v := NewValidator(collector)
	v.RegisterKnownClasses(register)
	v.Validate(prog)
	return v, collector
}

func TestValidateAcceptsWellFormedProgram(t *testing.T) {
	_, collector := validate(t, `
class Point
  int32 x;
  int32 y;

  method Point(int32 px, int32 py)
    this.x = px;
    this.y = py;
  end

  method int32 Sum()
    return x + y;
  end
end

Point p = new Point(3, 4);
int32 total = p.Sum();
`)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
}

func TestValidateUnknownMemberType(t *testing.T) {
	_, collector := validate(t, `
class Widget
  Sprocket gizmo;
end
`)
	if !collector.HasErrors() {
		t.Fatal("expected an error for an unknown member type")
	}
}

func TestValidateShortIsAValidPrimitive(t *testing.T) {
	_, collector := validate(t, `
class Counter
  short tally;

  method Counter()
    this.tally = 0;
  end
end
`)
	if collector.HasErrors() {
		t.Fatalf("'short' should be a valid primitive type: %s", collector.List(errors.ListOptions{}))
	}
}

func TestValidateUnknownParentClass(t *testing.T) {
	_, collector := validate(t, `
class Bird(Dinosaur)
  method Bird()
  end
end
`)
	if !collector.HasErrors() {
		t.Fatal("expected an error for an unknown parent class")
	}
}

func TestValidateDuplicateMember(t *testing.T) {
	_, collector := validate(t, `
class Box
  int32 size;
  int32 size;
end
`)
	if !collector.HasErrors() {
		t.Fatal("expected an error for a duplicate member")
	}
}

func TestValidateDuplicateParameter(t *testing.T) {
	_, collector := validate(t, `
class Box
  method Resize(int32 size, int32 size)
  end
end
`)
	if !collector.HasErrors() {
		t.Fatal("expected an error for a duplicate parameter")
	}
}

func TestValidateMissingReturnWarnsButConstructorIsExempt(t *testing.T) {
	_, collector := validate(t, `
class Thing
  method Thing()
  end

  method int32 Value()
    int32 x = 1;
  end
end
`)
	if collector.ErrorCount() != 0 {
		t.Fatalf("a missing return should warn, not error: %s", collector.List(errors.ListOptions{}))
	}
	if collector.WarningCount() == 0 {
		t.Fatal("expected a missing-return warning for Value()")
	}
}

func TestValidateAssignToUndeclaredVariable(t *testing.T) {
	_, collector := validate(t, `x = 1;`)
	if !collector.HasErrors() {
		t.Fatal("expected an error for assigning to an undeclared variable")
	}
}

func TestValidateThisMemberAssignNeverFlagged(t *testing.T) {
	_, collector := validate(t, `
class Counter
  int32 value;

  method Counter()
    this.value = 0;
  end

  method Bump()
    this.value = this.value + 1;
  end
end
`)
	if collector.HasErrors() {
		t.Fatalf("this.field assignment should never be flagged: %s", collector.List(errors.ListOptions{}))
	}
}

func TestValidateHostRegisteredClassIsKnown(t *testing.T) {
	_, collector := validate(t, `
class Ship
  Engine engine;
end
`, "Engine")
	if collector.HasErrors() {
		t.Fatalf("a host-registered class should validate as known: %s", collector.List(errors.ListOptions{}))
	}
}

func TestValidateSuperCallOnUnknownInstanceNotFlagged(t *testing.T) {
	_, collector := validate(t, `
class Animal
  method Animal()
  end
end

class Bird(Animal)
  method Bird()
    super::Animal();
  end
end
`)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
}
