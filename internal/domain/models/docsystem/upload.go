package docsystem

import "time"

// UploadState is a step of the upload state machine:
//
//	Idle -> InProgress(percent) -> Done | Cancelled | Failed
//
// Idle may also go straight to Cancelled or Failed. Terminal states absorb
// every further transition.
type UploadState string

const (
	UploadIdle       UploadState = "idle"
	UploadInProgress UploadState = "in_progress"
	UploadDone       UploadState = "done"
	UploadCancelled  UploadState = "cancelled"
	UploadFailed     UploadState = "failed"
)

// Terminal reports whether no further transition is accepted
func (s UploadState) Terminal() bool {
	return s == UploadDone || s == UploadCancelled || s == UploadFailed
}

// UploadStatus is the observable state of one upload session
type UploadStatus struct {
	ID         string      `json:"id"`
	Filename   string      `json:"filename,omitempty"`
	State      UploadState `json:"state"`
	Percent    int         `json:"percent"`
	DocumentID string      `json:"document_id,omitempty"`
	Error      string      `json:"error,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewUploadStatus returns an idle session
func NewUploadStatus(id string) UploadStatus {
	return UploadStatus{ID: id, State: UploadIdle, UpdatedAt: time.Now()}
}

// Start moves Idle to InProgress(0)
func (u *UploadStatus) Start(filename string) bool {
	if u.State != UploadIdle {
		return false
	}
	u.State = UploadInProgress
	u.Filename = filename
	u.Percent = 0
	u.UpdatedAt = time.Now()
	return true
}

// Advance records progress. Only accepted while in progress; percent is
// clamped to [0, 100] and never moves backwards.
func (u *UploadStatus) Advance(percent int) bool {
	if u.State != UploadInProgress {
		return false
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent < u.Percent {
		return false
	}
	u.Percent = percent
	u.UpdatedAt = time.Now()
	return true
}

// Complete moves InProgress to Done
func (u *UploadStatus) Complete(documentID string) bool {
	if u.State != UploadInProgress {
		return false
	}
	u.State = UploadDone
	u.Percent = 100
	u.DocumentID = documentID
	u.UpdatedAt = time.Now()
	return true
}

// Cancel moves any non-terminal state to Cancelled
func (u *UploadStatus) Cancel() bool {
	if u.State.Terminal() {
		return false
	}
	u.State = UploadCancelled
	u.UpdatedAt = time.Now()
	return true
}

// Fail moves any non-terminal state to Failed
func (u *UploadStatus) Fail(reason string) bool {
	if u.State.Terminal() {
		return false
	}
	u.State = UploadFailed
	u.Error = reason
	u.UpdatedAt = time.Now()
	return true
}
