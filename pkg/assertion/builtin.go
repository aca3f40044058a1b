package assertion

// Parameter name sets shared by the table below.
var (
	unaryParams  = []string{"a"}
	binaryParams = []string{"a", "b"}
	pathParams   = []string{"path"}
	xParams      = []string{"x"}
)

// builtins is the statically declared predicate table every
// Manager starts with. Names follow the operator, os.path, math
// and builtin function names they mirror.
var builtins = []Predicate{
	// operators
	{Name: "eq", Params: binaryParams, Fn: eq},
	{Name: "ne", Params: binaryParams, Fn: ne},
	{Name: "lt", Params: binaryParams, Fn: lt},
	{Name: "le", Params: binaryParams, Fn: le},
	{Name: "gt", Params: binaryParams, Fn: gt},
	{Name: "ge", Params: binaryParams, Fn: ge},
	{Name: "contains", Params: binaryParams, Fn: contains},
	{Name: "countOf", Params: binaryParams, Fn: countOf},
	{Name: "indexOf", Params: binaryParams, Fn: indexOf},
	{Name: "getitem", Params: binaryParams, Fn: getitem},
	{Name: "is_", Params: binaryParams, Fn: is},
	{Name: "is_not", Params: binaryParams, Fn: isNot},
	{Name: "not_", Params: unaryParams, Fn: not},
	{Name: "truth", Params: unaryParams, Fn: truth},
	{Name: "abs", Params: unaryParams, Fn: abs},
	{Name: "add", Params: binaryParams, Fn: add},
	{Name: "sub", Params: binaryParams, Fn: sub},
	{Name: "mul", Params: binaryParams, Fn: mul},
	{Name: "truediv", Params: binaryParams, Fn: truediv},
	{Name: "floordiv", Params: binaryParams, Fn: floordiv},
	{Name: "mod", Params: binaryParams, Fn: mod},
	{Name: "pow", Params: binaryParams, Fn: pow},
	{Name: "neg", Params: unaryParams, Fn: neg},
	{Name: "pos", Params: unaryParams, Fn: pos},
	{Name: "and_", Params: binaryParams, Fn: and},
	{Name: "or_", Params: binaryParams, Fn: or},
	{Name: "xor", Params: binaryParams, Fn: xor},
	{Name: "lshift", Params: binaryParams, Fn: lshift},
	{Name: "rshift", Params: binaryParams, Fn: rshift},
	{Name: "inv", Params: unaryParams, Fn: inv},
	{Name: "invert", Params: unaryParams, Fn: inv},
	{Name: "index", Params: unaryParams, Fn: index},
	{Name: "concat", Params: binaryParams, Fn: concat},

	// filesystem
	{Name: "isabs", Params: pathParams, Fn: isabs},
	{Name: "isdir", Params: pathParams, Fn: isdir},
	{Name: "isfile", Params: pathParams, Fn: isfile},
	{Name: "islink", Params: pathParams, Fn: islink},
	{Name: "ismount", Params: pathParams, Fn: ismount},

	// math
	{Name: "isclose", Params: binaryParams, Fn: isclose},
	{Name: "isfinite", Params: xParams, Fn: isfinite},
	{Name: "isinf", Params: xParams, Fn: isinf},
	{Name: "isnan", Params: xParams, Fn: isnan},

	// builtins
	{Name: "callable", Params: []string{"obj"}, Fn: callable},
	{Name: "hasattr", Params: []string{"obj", "name"}, Fn: hasattr},
	{Name: "isinstance", Params: []string{"obj", "class_or_tuple"}, Fn: isinstance},
	{Name: "issubclass", Params: []string{"cls", "class_or_tuple"}, Fn: issubclass},
	{Name: "len", Params: []string{"obj"}, Fn: length},
	{Name: "bool", Params: xParams, Fn: boolOf},
	{Name: "any", Params: []string{"iterable"}, Fn: anyOf},
	{Name: "all", Params: []string{"iterable"}, Fn: allOf},

	// misc
	{Name: "len_eq", Params: binaryParams, Fn: lenEq},
	{Name: "str_eq", Params: binaryParams, Fn: strEq},
	{Name: "shape_eq", Params: binaryParams, Fn: shapeEq},
	{Name: "isdisjoint", Params: binaryParams, Fn: isdisjoint},
	{Name: "function_eq", Params: []string{"func1", "func2"}, Fn: functionEq},
}

// aliases registers extra names for existing predicates.
var aliases = map[string]string{
	"allclose": "isclose",
}
