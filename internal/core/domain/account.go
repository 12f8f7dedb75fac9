package domain

import "time"

// DocumentKind distinguishes the attachments a resident uploads with their profile.
type DocumentKind string

const (
	DocumentNationalID DocumentKind = "KTP" // national identity card
	DocumentFamilyCard DocumentKind = "KK"  // family card
	DocumentOther      DocumentKind = "LAINNYA"
)

// IdentityDocument is an attachment uploaded by a resident. File storage is an
// external concern; the portal only keeps the reference.
type IdentityDocument struct {
	DocumentID string       `json:"documentID"`
	Kind       DocumentKind `json:"kind"`
	FileURL    string       `json:"fileURL"`
	UploadedAt time.Time    `json:"uploadedAt"`
}

// Account is a resident record in the neighborhood registry.
//
// The pair (DataComplete, Verified) acts as the verification state:
// a freshly registered account is (false, false); submitting a full profile
// moves it to (true, false), which places it on the administrator queue;
// approval moves it to (true, true), rejection back to (false, false) with a
// stored reason so the resident can correct and resubmit. Only the transition
// service may flip these flags.
type Account struct {
	AccountID     string `json:"accountID"`
	NationalID    string `json:"nationalID"`   // NIK
	FamilyCardID  string `json:"familyCardID"` // nomor KK
	FullName      string `json:"fullName"`
	Occupation    string `json:"occupation"`
	Religion      string `json:"religion"`
	MaritalStatus string `json:"maritalStatus"`
	Education     string `json:"education"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`

	Documents []IdentityDocument `json:"documents"`

	DataComplete    bool       `json:"dataComplete"`
	Verified        bool       `json:"verified"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"` // when the profile was completed

	AuditFields
}

// AwaitingVerification reports whether the account belongs on the
// administrator verification queue.
func (a Account) AwaitingVerification() bool {
	return a.DataComplete && !a.Verified
}

// HasIdentityDocument reports whether at least one uploaded attachment is an
// identity document (KTP), the minimum evidence for auto-approval.
func (a Account) HasIdentityDocument() bool {
	for _, doc := range a.Documents {
		if doc.Kind == DocumentNationalID {
			return true
		}
	}
	return false
}
