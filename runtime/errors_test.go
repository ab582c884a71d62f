package runtime

import (
	"errors"
	"testing"

	"github.com/nukata/r6-scheme-in-go/datum"
)

func testEvalError(t *testing.T, input string, want *Error) *Error {
	t.Helper()
	_, err := evalString(New(), input)
	if err == nil {
		t.Fatalf("expected error for %q", input)
	}
	if !errors.Is(err, want) {
		t.Fatalf("eval %q: got %v, want kind %v", input, err, want.Kind)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("eval %q: %T is not *Error", input, err)
	}
	return e
}

func TestUnboundVariable(t *testing.T) {
	e := testEvalError(t, "undefined-var", ErrUnboundVariable)
	if e.Name != "undefined-var" {
		t.Errorf("Name = %q", e.Name)
	}
	if e.Error() != "unbound variable: undefined-var" {
		t.Errorf("message = %q", e.Error())
	}
	e = testEvalError(t, "(set! nope 1)", ErrUnboundVariable)
	if e.Name != "nope" {
		t.Errorf("Name = %q", e.Name)
	}
	// set! checks the binding before evaluating its operand.
	testEvalError(t, "(set! nope (car 1))", ErrUnboundVariable)
}

func TestNotCallable(t *testing.T) {
	testEvalError(t, "(1 2)", ErrNotCallable)
	testEvalError(t, "('a)", ErrNotCallable)
	// The head is checked before the arguments are evaluated.
	testEvalError(t, "(1 (car 1))", ErrNotCallable)
}

func TestNotList(t *testing.T) {
	testEvalError(t, "(car . 1)", ErrNotList)
	testEvalError(t, "(length '(1 . 2))", ErrNotList)
	testEvalError(t, "(apply + 1 2)", ErrNotList)
	testEvalError(t, "`(1 ,@2 3)", ErrNotList)
}

func TestArgNum(t *testing.T) {
	e := testEvalError(t, "(car 1 2)", ErrArgNum)
	if e.Name != "car" || e.Min != 1 || e.Max != 1 || e.Got != 2 {
		t.Errorf("got %+v", e)
	}
	if e.Error() != "car: expected 1 argument, received 2" {
		t.Errorf("message = %q", e.Error())
	}
	e = testEvalError(t, "((lambda (x y) x) 1)", ErrArgNum)
	if e.Min != 2 || e.Max != 2 || e.Got != 1 {
		t.Errorf("got %+v", e)
	}
	e = testEvalError(t, "((lambda (x . y) x))", ErrArgNum)
	if e.Min != 1 || e.Max != -1 || e.Got != 0 {
		t.Errorf("got %+v", e)
	}
	e = testEvalError(t, "(define (f x) x) (f)", ErrArgNum)
	if e.Name != "f" {
		t.Errorf("Name = %q", e.Name)
	}
	testEvalError(t, "(-)", ErrArgNum)
	testEvalError(t, "(< 1)", ErrArgNum)
	testEvalError(t, "(< 'a)", ErrArgNum)
}

func TestTypeError(t *testing.T) {
	e := testEvalError(t, "(car 1)", ErrType)
	if e.Name != "car" {
		t.Errorf("Name = %q", e.Name)
	}
	testEvalError(t, "(+ 1 'a)", ErrType)
	testEvalError(t, "(< 1 'a)", ErrType)
	testEvalError(t, "(< 1+2i 3)", ErrType)
	testEvalError(t, "(= 'a)", ErrType)
	testEvalError(t, "(= 1+i 1+i)", ErrType)
	testEvalError(t, "(= 1+2i 1)", ErrType)
	testEvalError(t, "(= 1 +i)", ErrType)
	testEvalError(t, "(exact +inf.0)", ErrType)
	testEvalError(t, "(quotient 1/2 3)", ErrType)
	testEvalError(t, "(vector-ref #(1) 1)", ErrType)
	testEvalError(t, "(exact? 'a)", ErrType)
	testEvalError(t, "(atan 1+2i 1)", ErrType)
}

func TestDivideByZero(t *testing.T) {
	e := testEvalError(t, "(/ 1 0)", ErrDivideByZero)
	if e.Name != "/" {
		t.Errorf("Name = %q", e.Name)
	}
	testEvalError(t, "(/ 0)", ErrDivideByZero)
	testEvalError(t, "(modulo 5 0)", ErrDivideByZero)
	if _, err := evalString(New(), "(/ 1 0.0)"); err != nil {
		t.Errorf("inexact division by zero failed: %v", err)
	}
}

func TestNilEval(t *testing.T) {
	e := testEvalError(t, "()", ErrNilEval)
	if e.Error() != "() cannot be evaluated" {
		t.Errorf("message = %q", e.Error())
	}
}

func TestSyntaxError(t *testing.T) {
	for _, input := range []string{
		"(if)",
		"(if 1 2 3 4)",
		"(quote)",
		"(lambda (x))",
		"(lambda (1) 1)",
		"(lambda (x x) x)",
		"(define)",
		"(define 1 2)",
		"(set! 1 2)",
		",x",
		"(unquote-splicing x)",
		"(if . 1)",
		"if",
		"(define my-if if)",
		"(list quote)",
	} {
		testEvalError(t, input, ErrSyntax)
	}
	e := testEvalError(t, "(define my-if if) (my-if #f 1 2)", ErrSyntax)
	if e.Name != "if" {
		t.Errorf("Name = %q", e.Name)
	}
}

func TestFirstErrorWins(t *testing.T) {
	testEvalError(t, "(+ (car 1) undefined)", ErrType)
	testEvalError(t, "(+ undefined (car 1))", ErrUnboundVariable)
	testEvalError(t, "(undefined (car 1))", ErrUnboundVariable)
}

func TestDepthExceeded(t *testing.T) {
	in := New(WithMaxDepth(50))
	_, err := evalString(in, `
(define (count n) (if (= n 0) 0 (+ 1 (count (- n 1)))))
(count 100)`)
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("got %v", err)
	}
	// The interpreter stays usable and its depth is unwound.
	v, err := evalString(in, "(count 5)")
	if err != nil {
		t.Fatal(err)
	}
	if s := datum.Stringify(v, true); s != "5" {
		t.Errorf("got %s", s)
	}
}

func TestErrorIsKindOnly(t *testing.T) {
	err := &Error{Kind: TypeError, Name: "car", Detail: "x"}
	if !errors.Is(err, ErrType) {
		t.Error("errors.Is should match the kind sentinel")
	}
	if errors.Is(err, ErrArgNum) {
		t.Error("errors.Is matched a different kind")
	}
}
