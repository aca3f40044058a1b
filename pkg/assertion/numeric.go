package assertion

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
)

// number is an operand normalized for arithmetic. Unsigned values
// above math.MaxInt64 are held in u with wide set.
type number struct {
	isInt bool
	wide  bool
	i     int64
	u     uint64
	f     float64
}

func (n number) float() float64 {
	switch {
	case n.wide:
		return float64(n.u)
	case n.isInt:
		return float64(n.i)
	}
	return n.f
}

func (n number) bigInt() *big.Int {
	if n.wide {
		return new(big.Int).SetUint64(n.u)
	}
	return big.NewInt(n.i)
}

// cmpIntNumbers orders two integer numbers. A wide value is
// larger than every int64.
func cmpIntNumbers(a, b number) int {
	switch {
	case a.wide && b.wide:
		return cmpUints(a.u, b.u)
	case a.wide:
		return 1
	case b.wide:
		return -1
	}
	return cmpInts(a.i, b.i)
}

func cmpUints(x, y uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toNumber(v any) (number, bool) {
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{isInt: true, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return number{isInt: true, wide: true, u: u}, true
		}
		return number{isInt: true, i: int64(u)}, true
	case reflect.Float32, reflect.Float64:
		return number{f: rv.Float()}, true
	}
	return number{}, false
}

// intResult converts i back to the operands' type when both
// share one, and to int64 otherwise.
func intResult(i int64, a, b any) any {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta != nil {
		return reflect.ValueOf(i).Convert(ta).Interface()
	}
	return i
}

// floatResult keeps float32 when both operands are float32.
func floatResult(f float64, a, b any) any {
	_, okA := a.(float32)
	_, okB := b.(float32)
	if okA && okB {
		return float32(f)
	}
	return f
}

func unsupported(op string, a, b any) error {
	return fmt.Errorf(
		"%w: unsupported operand types for %s: %s and %s",
		ErrArgument, op, typeOf(a), typeOf(b),
	)
}

func typeOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// arith applies an integer or float implementation of a binary
// operator. A nil ints forces float arithmetic.
func arith(
	op string,
	a, b any,
	ints func(x, y int64) (int64, error),
	floats func(x, y float64) (float64, error),
) (any, error) {
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if !okA || !okB {
		return nil, unsupported(op, a, b)
	}
	if na.isInt && nb.isInt && ints != nil {
		if na.wide || nb.wide {
			return wideArith(op, na, nb, a, b)
		}
		r, err := ints(na.i, nb.i)
		if err != nil {
			return nil, err
		}
		return intResult(r, a, b), nil
	}
	r, err := floats(na.float(), nb.float())
	if err != nil {
		return nil, err
	}
	return floatResult(r, a, b), nil
}

// wideArith evaluates an integer operator exactly when an operand
// does not fit in int64.
func wideArith(op string, na, nb number, a, b any) (any, error) {
	x, y := na.bigInt(), nb.bigInt()
	r := new(big.Int)
	switch op {
	case "+":
		r.Add(x, y)
	case "-":
		r.Sub(x, y)
	case "*":
		r.Mul(x, y)
	case "//", "%":
		if y.Sign() == 0 && op == "//" {
			return nil, zeroDivision("integer division")
		}
		if y.Sign() == 0 {
			return nil, zeroDivision("integer modulo")
		}
		q, m := new(big.Int).QuoRem(x, y, new(big.Int))
		if m.Sign() != 0 && m.Sign() != y.Sign() {
			q.Sub(q, big.NewInt(1))
			m.Add(m, y)
		}
		if op == "//" {
			r = q
		} else {
			r = m
		}
	case "**":
		if y.Cmp(big.NewInt(128)) > 0 && x.CmpAbs(big.NewInt(1)) > 0 {
			return nil, intOverflow(op)
		}
		r.Exp(x, y, nil)
	case "&":
		r.And(x, y)
	case "|":
		r.Or(x, y)
	case "^":
		r.Xor(x, y)
	case "<<", ">>":
		if y.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative shift count", ErrValue)
		}
		if !y.IsInt64() || y.Int64() > 128 {
			if op == ">>" && x.Sign() < 0 {
				r.SetInt64(-1)
				break
			}
			if op == ">>" {
				break
			}
			return nil, intOverflow(op)
		}
		if op == "<<" {
			r.Lsh(x, uint(y.Int64()))
		} else {
			r.Rsh(x, uint(y.Int64()))
		}
	default:
		return nil, unsupported(op, a, b)
	}
	return wideResult(op, r, a, b)
}

// wideResult narrows r back to the operands' shared unsigned type
// when it fits, then to int64 or uint64.
func wideResult(op string, r *big.Int, a, b any) (any, error) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta != nil && r.IsUint64() {
		switch ta.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
			reflect.Uint64, reflect.Uintptr:
			v := reflect.New(ta).Elem()
			if !v.OverflowUint(r.Uint64()) {
				v.SetUint(r.Uint64())
				return v.Interface(), nil
			}
		}
	}
	if r.IsInt64() {
		return r.Int64(), nil
	}
	if r.IsUint64() {
		return r.Uint64(), nil
	}
	return nil, intOverflow(op)
}

func intOverflow(op string) error {
	return fmt.Errorf("%w: integer overflow in %s", ErrValue, op)
}

func zeroDivision(op string) error {
	return fmt.Errorf("%w: %s by zero", ErrZeroDivision, op)
}

func add(a, b any) (any, error) {
	if out, ok := joinSequences(a, b); ok {
		return out, nil
	}
	return arith("+", a, b,
		func(x, y int64) (int64, error) { return x + y, nil },
		func(x, y float64) (float64, error) { return x + y, nil })
}

func sub(a, b any) (any, error) {
	return arith("-", a, b,
		func(x, y int64) (int64, error) { return x - y, nil },
		func(x, y float64) (float64, error) { return x - y, nil })
}

func mul(a, b any) (any, error) {
	if out, ok := repeatSequence(a, b); ok {
		return out, nil
	}
	if out, ok := repeatSequence(b, a); ok {
		return out, nil
	}
	return arith("*", a, b,
		func(x, y int64) (int64, error) { return x * y, nil },
		func(x, y float64) (float64, error) { return x * y, nil })
}

func truediv(a, b any) (any, error) {
	return arith("/", a, b, nil,
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, zeroDivision("division")
			}
			return x / y, nil
		})
}

// floordiv rounds toward negative infinity.
func floordiv(a, b any) (any, error) {
	return arith("//", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, zeroDivision("integer division")
			}
			q := x / y
			if x%y != 0 && (x < 0) != (y < 0) {
				q--
			}
			return q, nil
		},
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, zeroDivision("float floor division")
			}
			return math.Floor(x / y), nil
		})
}

// mod takes the sign of the divisor.
func mod(a, b any) (any, error) {
	return arith("%", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, zeroDivision("integer modulo")
			}
			r := x % y
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r, nil
		},
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, zeroDivision("float modulo")
			}
			r := math.Mod(x, y)
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return r, nil
		})
}

func pow(a, b any) (any, error) {
	if nb, ok := toNumber(b); ok && nb.isInt && nb.i < 0 {
		// A negative integer exponent yields a float.
		return arith("**", a, b, nil, floatPow)
	}
	return arith("**", a, b,
		func(x, y int64) (int64, error) {
			r := int64(1)
			for ; y > 0; y >>= 1 {
				if y&1 == 1 {
					r *= x
				}
				x *= x
			}
			return r, nil
		},
		floatPow)
}

func floatPow(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, zeroDivision("zero to a negative power")
	}
	return math.Pow(x, y), nil
}

func neg(a any) (any, error) {
	n, ok := toNumber(a)
	if !ok {
		return nil, unaryUnsupported("-", a)
	}
	if n.wide {
		return wideResult("-", new(big.Int).Neg(n.bigInt()), a, a)
	}
	if n.isInt {
		return intResult(-n.i, a, a), nil
	}
	return floatResult(-n.f, a, a), nil
}

func pos(a any) (any, error) {
	if _, ok := toNumber(a); !ok {
		return nil, unaryUnsupported("+", a)
	}
	return a, nil
}

func abs(a any) (any, error) {
	n, ok := toNumber(a)
	if !ok {
		return nil, unaryUnsupported("abs()", a)
	}
	if n.wide {
		return a, nil
	}
	if n.isInt {
		if n.i < 0 {
			n.i = -n.i
		}
		return intResult(n.i, a, a), nil
	}
	return floatResult(math.Abs(n.f), a, a), nil
}

func inv(a any) (any, error) {
	n, ok := toNumber(a)
	if !ok || !n.isInt {
		return nil, unaryUnsupported("~", a)
	}
	if n.wide {
		return wideResult("~", new(big.Int).Not(n.bigInt()), a, a)
	}
	return intResult(^n.i, a, a), nil
}

func unaryUnsupported(op string, a any) error {
	return fmt.Errorf(
		"%w: bad operand type for unary %s: %s",
		ErrArgument, op, typeOf(a),
	)
}

// bitwise applies op to two integers or two bools.
func bitwise(
	op string,
	a, b any,
	ints func(x, y int64) int64,
	bools func(x, y bool) bool,
) (any, error) {
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			return bools(x, y), nil
		}
	}
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if !okA || !okB || !na.isInt || !nb.isInt {
		return nil, unsupported(op, a, b)
	}
	if na.wide || nb.wide {
		return wideArith(op, na, nb, a, b)
	}
	return intResult(ints(na.i, nb.i), a, b), nil
}

func and(a, b any) (any, error) {
	return bitwise("&", a, b,
		func(x, y int64) int64 { return x & y },
		func(x, y bool) bool { return x && y })
}

func or(a, b any) (any, error) {
	return bitwise("|", a, b,
		func(x, y int64) int64 { return x | y },
		func(x, y bool) bool { return x || y })
}

func xor(a, b any) (any, error) {
	return bitwise("^", a, b,
		func(x, y int64) int64 { return x ^ y },
		func(x, y bool) bool { return x != y })
}

func shift(op string, a, b any, fn func(x int64, n uint) int64) (any, error) {
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if !okA || !okB || !na.isInt || !nb.isInt {
		return nil, unsupported(op, a, b)
	}
	if na.wide || nb.wide {
		return wideArith(op, na, nb, a, b)
	}
	if nb.i < 0 {
		return nil, fmt.Errorf("%w: negative shift count", ErrValue)
	}
	return intResult(fn(na.i, uint(nb.i)), a, b), nil
}

func lshift(a, b any) (any, error) {
	return shift("<<", a, b, func(x int64, n uint) int64 { return x << n })
}

func rshift(a, b any) (any, error) {
	return shift(">>", a, b, func(x int64, n uint) int64 { return x >> n })
}

// index returns a as an int when it is an integer.
func index(a any) (int, error) {
	n, ok := toNumber(a)
	if !ok || !n.isInt {
		return 0, fmt.Errorf(
			"%w: %s cannot be interpreted as an integer",
			ErrArgument, typeOf(a),
		)
	}
	if n.wide || int64(int(n.i)) != n.i {
		return 0, fmt.Errorf("%w: %v does not fit in an int", ErrIndex, a)
	}
	return int(n.i), nil
}
