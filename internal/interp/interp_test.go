package interp

import (
	"testing"

	"github.com/StarSignalAnt/qlang/internal/errors"
	"github.com/StarSignalAnt/qlang/internal/lexer"
	"github.com/StarSignalAnt/qlang/internal/parser"
	"github.com/StarSignalAnt/qlang/internal/runtime"
)

// run parses and executes src, returning the evaluator (for variable
// inspection) and its diagnostic collector.
func run(t *testing.T, src string) (*Evaluator, *errors.Collector) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	collector := errors.NewCollector()
	collector.SetSource(src)
	prog := parser.New(toks, collector).Parse()
	if collector.HasErrors() {
		t.Fatalf("parse errors: %s", collector.List(errors.ListOptions{}))
	}
	ev := New(collector)
	ev.Run(prog)
	return ev, collector
}

func wantInt32(t *testing.T, v runtime.Value, want int32) {
	t.Helper()
	i, ok := v.(*runtime.Int32)
	if !ok || i.Value != want {
		t.Fatalf("got %#v, want int32 %d", v, want)
	}
}

func wantString(t *testing.T, v runtime.Value, want string) {
	t.Helper()
	s, ok := v.(*runtime.String)
	if !ok || s.Value != want {
		t.Fatalf("got %#v, want string %q", v, want)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	ev, _ := run(t, `int32 x = 2 + 3 * 4;`)
	v, ok := ev.FindVar("x")
	if !ok {
		t.Fatal("x not found")
	}
	wantInt32(t, v, 14)
}

func TestUnaryMinusFusion(t *testing.T) {
	ev, _ := run(t, `int32 x = 10 + -3;`)
	v, _ := ev.FindVar("x")
	wantInt32(t, v, 7)
}

func TestStringConcat(t *testing.T) {
	ev, _ := run(t, `string s = "a" + "b";`)
	v, _ := ev.FindVar("s")
	wantString(t, v, "ab")
}

func TestIfElseIf(t *testing.T) {
	ev, _ := run(t, `
int32 x = 2;
int32 y = 0;
if x == 1
  y = 1;
elseif x == 2
  y = 2;
else
  y = 3;
end
`)
	v, _ := ev.FindVar("y")
	wantInt32(t, v, 2)
}

func TestForLoopSum(t *testing.T) {
	ev, _ := run(t, `
int32 total = 0;
for int32 i = 1 to 5
  total = total + i;
next
`)
	v, _ := ev.FindVar("total")
	wantInt32(t, v, 15)
}

func TestForLoopNeverRunsWhenStartPastEnd(t *testing.T) {
	ev, _ := run(t, `
int32 hits = 0;
for int32 i = 5 to 1
  hits = hits + 1;
next
`)
	v, _ := ev.FindVar("hits")
	wantInt32(t, v, 0)
}

func TestWhileLoop(t *testing.T) {
	ev, _ := run(t, `
int32 i = 0;
while i < 5
  i++;
wend
`)
	v, _ := ev.FindVar("i")
	wantInt32(t, v, 5)
}

func TestAssignToUndeclaredIsRuntimeError(t *testing.T) {
	ev, collector := run(t, `x = 1;`)
	if !collector.HasErrors() {
		t.Fatal("expected a runtime error for undeclared assignment")
	}
	if ev.HasVar("x") {
		t.Fatal("x should not have been implicitly declared")
	}
}

func TestClassConstructionAndMethodCall(t *testing.T) {
	ev, collector := run(t, `
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
	v, _ := ev.FindVar("total")
	wantInt32(t, v, 7)
}

func TestMethodMutatesInstanceField(t *testing.T) {
	ev, collector := run(t, `
class Counter
  int32 value;

  method Counter()
    this.value = 0;
  end

  method Bump()
    this.value = this.value + 1;
  end
end

Counter c = new Counter();
c.Bump();
c.Bump();
c.Bump();
int32 result = c.value;
`)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	v, _ := ev.FindVar("result")
	wantInt32(t, v, 3)
}

func TestInheritanceAndSuperCall(t *testing.T) {
	ev, collector := run(t, `
class Animal
  int32 legs;

  method Animal()
    this.legs = 4;
  end
end

class Bird(Animal)
  method Bird()
    super::Animal();
    this.legs = 2;
  end
end

Bird b = new Bird();
int32 legs = b.legs;
`)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	v, _ := ev.FindVar("legs")
	wantInt32(t, v, 2)
}

func TestOperatorOverload(t *testing.T) {
	ev, collector := run(t, `
class Vec2
  int32 x;
  int32 y;

  method Vec2(int32 px, int32 py)
    this.x = px;
    this.y = py;
  end

  method Vec2 Plus(Vec2 other)
    Vec2 result = new Vec2(this.x + other.x, this.y + other.y);
    return result;
  end
end

Vec2 a = new Vec2(1, 2);
Vec2 b = new Vec2(3, 4);
Vec2 c = a + b;
int32 sumX = c.x;
`)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	v, _ := ev.FindVar("sumX")
	wantInt32(t, v, 4)
}

func TestNestedInstanceFieldInitializer(t *testing.T) {
	ev, collector := run(t, `
class Engine
  int32 power;

  method Engine()
    this.power = 300;
  end
end

class Car
  Engine engine = new Engine();
end

Car car = new Car();
int32 power = car.engine.power;
`)
	if collector.HasErrors() {
		t.Fatalf("unexpected errors: %s", collector.List(errors.ListOptions{}))
	}
	v, _ := ev.FindVar("power")
	wantInt32(t, v, 300)
}
