// Package ops implements the device operation executor: each supported
// operation is a fixed command template, parameterized by validated fields,
// executed as one open -> execute -> close session cycle, and classified
// into a structured result.
package ops

// Kind identifies one of the supported operations. The set is closed:
// dispatch is a switch over these variants, each with its own parameter
// shape and command template.
type Kind string

const (
	KindConfigureInterface Kind = "configure_interface"
	KindShowStatus         Kind = "show_status"
	KindPing               Kind = "ping"
	KindBackup             Kind = "backup"
	KindConfigureOSPF      Kind = "configure_ospf"
)

// Status classifies the outcome of an operation attempt.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusValidationError Status = "validation_error"
	StatusTimeout         Status = "timeout"
	StatusAuthError       Status = "auth_error"
	StatusExecutionError  Status = "execution_error"
	StatusFilesystemError Status = "filesystem_error"
)

// Result is the immutable outcome of one operation attempt. RawOutput holds
// whatever the device produced, including partial output on failure; Detail
// carries the classified, human-readable reason or note.
type Result struct {
	Status    Status
	RawOutput string
	Detail    string
}

// InterfaceParams are the inputs for configure_interface.
type InterfaceParams struct {
	Name string
	IPv4 string
	Mask string
}

// PingParams are the inputs for ping. Count <= 0 means the executor default.
type PingParams struct {
	Target string
	Count  int
}

// OSPFParams are the inputs for configure_ospf. All fields arrive raw and
// are validated before any session is opened.
type OSPFParams struct {
	ProcessID string
	RouterID  string
	Network   string
	Wildcard  string
	Area      string
}

// Request is the closed tagged-variant form of an operation: exactly the
// parameter struct matching Kind is set.
type Request struct {
	Kind      Kind
	Interface *InterfaceParams
	Ping      *PingParams
	OSPF      *OSPFParams
}
