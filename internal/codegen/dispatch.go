package codegen

// Symbol describes one runtime helper a module-qualified call lowers to
// (§4.6 "Call"). dispatchTable replaces the reference's giant hand-coded
// switch with the table-driven design §9 recommends: a map keyed by
// "Module.function" (and the synonym strings the spec calls out) to the
// fixed runtime symbol name and its declared ABI descriptor.
type Symbol struct {
	Runtime string
	Params  []ABI
	Result  ABI
}

var dispatchTable = map[string]Symbol{
	"String.concat": {"fern_str_concat", []ABI{L, L}, L},
	"String.length": {"fern_str_length", []ABI{L}, W},
	"String.slice":  {"fern_str_slice", []ABI{L, W, W}, L},
	"str_concat":    {"fern_str_concat", []ABI{L, L}, L},
	"str_length":    {"fern_str_length", []ABI{L}, W},

	"List.length": {"fern_list_length", []ABI{L}, W},
	"List.push":   {"fern_list_push", []ABI{L, L}, L},
	"List.get":    {"fern_list_get", []ABI{L, W}, L},
	"list_length": {"fern_list_length", []ABI{L}, W},
	"list_push":   {"fern_list_push", []ABI{L, L}, L},

	"File.read":  {"fern_file_read", []ABI{L}, L},
	"File.write": {"fern_file_write", []ABI{L, L}, W},
	"file_read":  {"fern_file_read", []ABI{L}, L},
	"file_write": {"fern_file_write", []ABI{L, L}, W},

	"System.exit": {"fern_exit", []ABI{W}, W},
	"System.args": {"fern_args", nil, L},
	"System.arg":  {"fern_arg", []ABI{W}, L},
}

// printSymbol picks the runtime print helper for a single argument's kind
// ("int"/"bool"/"float"/"str"), matching §4.6's "select
// fern_print_int|bool|str by the argument's static type" rule.
func printSymbol(kind string, newline bool) string {
	base := "fern_print_" + kind
	if newline {
		base += "ln"
	}
	return base
}
