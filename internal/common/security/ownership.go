package security

import "taskmanager/internal/common"

// AssertOwner is the ownership guard applied to every read, update and delete
// of an owned resource. Pure comparison, no I/O. Any mismatch, including an
// empty requester id, fails closed with ErrForbidden. Creation paths derive
// ownership from the authenticated identity and do not call this.
func AssertOwner(ownerID, requesterID string) error {
	if requesterID == "" || ownerID != requesterID {
		return common.ErrForbidden
	}
	return nil
}
