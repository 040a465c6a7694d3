package capacity

import "fmt"

// MalformedQuantityError reports a resource quantity string that could not
// be parsed. Field identifies where the value came from when the failure
// surfaces during snapshot construction.
type MalformedQuantityError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedQuantityError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed quantity %q for %s: %s", e.Value, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed quantity %q: %s", e.Value, e.Reason)
}

// ClusterUnavailableError reports that the cluster-access collaborator
// failed to supply one of the lists a snapshot is built from. The failure
// is propagated verbatim, never retried.
type ClusterUnavailableError struct {
	Resource string
	Err      error
}

func (e *ClusterUnavailableError) Error() string {
	return fmt.Sprintf("cluster unavailable: failed to list %s: %v", e.Resource, e.Err)
}

func (e *ClusterUnavailableError) Unwrap() error {
	return e.Err
}

// ReferencePodNotFoundError reports that no non-terminal pod in the given
// namespace matched the application name fragment. This is a precondition
// failure distinct from a fits=false result.
type ReferencePodNotFoundError struct {
	AppName   string
	Namespace string
}

func (e *ReferencePodNotFoundError) Error() string {
	return fmt.Sprintf("no pods found matching %q in namespace %q", e.AppName, e.Namespace)
}

// InvalidParameterError reports a caller-supplied parameter rejected before
// any snapshot fetch.
type InvalidParameterError struct {
	Parameter string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Parameter, e.Reason)
}
