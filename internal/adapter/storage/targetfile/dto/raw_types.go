package targetfile_dto

// TargetRaw is one entry of the targets file as written by the operator.
// Pointer fields let the mapper tell a missing member from an empty one.
type TargetRaw struct {
	Name         *string `json:"name" yaml:"name"`
	RPC          *string `json:"rpc" yaml:"rpc"`
	SuccessCount *uint64 `json:"success_count,omitempty" yaml:"success_count,omitempty"`
	FailedCount  *uint64 `json:"failed_count,omitempty" yaml:"failed_count,omitempty"`
}
