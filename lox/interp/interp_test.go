package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaji/treewalk/lox/lexer"
	"github.com/amaji/treewalk/lox/parser"
	"github.com/amaji/treewalk/lox/resolve"
)

func runSource(t *testing.T, source string) (string, []string) {
	t.Helper()
	toks, lexDiags := lexer.New(source).ScanTokens()
	assert.Empty(t, lexDiags)
	stmts, parseDiags := parser.New(toks).Parse()
	assert.Empty(t, parseDiags)
	locals, resolveDiags := resolve.Resolve(stmts)
	assert.Empty(t, resolveDiags)

	var buf bytes.Buffer
	diags := New(&buf).Interpret(stmts, locals)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return buf.String(), msgs
}

func TestInterpret_ArithmeticPrecedence(t *testing.T) {
	out, diags := runSource(t, `print 1 + 2 * 3;`)
	assert.Empty(t, diags)
	assert.Equal(t, "7\n", out)
}

func TestInterpret_StringConcatenation(t *testing.T) {
	out, diags := runSource(t, `print "foo" + "bar";`)
	assert.Empty(t, diags)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpret_IntegralNumberDropsTrailingZero(t *testing.T) {
	out, diags := runSource(t, `print 10 / 2;`)
	assert.Empty(t, diags)
	assert.Equal(t, "5\n", out)
}

func TestInterpret_Truthiness(t *testing.T) {
	out, diags := runSource(t, `
		if (0) print "zero is truthy"; else print "zero is falsy";
		if (nil) print "nil is truthy"; else print "nil is falsy";
	`)
	assert.Empty(t, diags)
	assert.Equal(t, "zero is truthy\nnil is falsy\n", out)
}

func TestInterpret_ClosureCounter(t *testing.T) {
	src := `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				return i;
			}
			return count;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`
	out, diags := runSource(t, src)
	assert.Empty(t, diags)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_ReturnUnwindsNestedBlocks(t *testing.T) {
	src := `
		fun f() {
			if (true) {
				{
					return "deep";
				}
			}
			return "shallow";
		}
		print f();
	`
	out, diags := runSource(t, src)
	assert.Empty(t, diags)
	assert.Equal(t, "deep\n", out)
}

func TestInterpret_ClassesInheritanceAndSuper(t *testing.T) {
	src := `
		class Animal {
			init(name) { this.name = name; }
			speak() { return this.name + " makes a noise."; }
		}
		class Dog < Animal {
			speak() { return super.speak() + " Woof!"; }
		}
		var d = Dog("Rex");
		print d.speak();
	`
	out, diags := runSource(t, src)
	assert.Empty(t, diags)
	assert.Equal(t, "Rex makes a noise. Woof!\n", out)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, diags := runSource(t, `print undefined_var;`)
	assert.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Undefined variable")
}

func TestInterpret_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, diags := runSource(t, `print 1 / 0;`)
	assert.Len(t, diags, 1)
	assert.True(t, strings.Contains(diags[0], "Division by zero"))
}

func TestInterpret_WhileLoop(t *testing.T) {
	src := `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		print sum;
	`
	out, diags := runSource(t, src)
	assert.Empty(t, diags)
	assert.Equal(t, "10\n", out)
}

func TestInterpret_ForLoop(t *testing.T) {
	out, diags := runSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	assert.Empty(t, diags)
	assert.Equal(t, "0\n1\n2\n", out)
}
