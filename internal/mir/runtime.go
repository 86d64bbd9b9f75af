package mir

// Runtime ABI symbols. Lowering references them by name only; linking them
// to an implementation happens in a later backend phase.
const (
	RuntimePrintInt   = "pyrsc_print_int"
	RuntimePrintFloat = "pyrsc_print_float"
	RuntimePrintBool  = "pyrsc_print_bool"
	RuntimePrintStr   = "pyrsc_print_str"
	RuntimePrintList  = "pyrsc_print_list"

	RuntimeListNew  = "pyrsc_list_new"
	RuntimeListPush = "pyrsc_list_push"
	RuntimeListGet  = "pyrsc_list_get"
	RuntimeListSet  = "pyrsc_list_set"

	RuntimeLenList = "pyrsc_len_list"
	RuntimeLenStr  = "pyrsc_len_str"
)
