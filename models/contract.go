package models

import "time"

// RentalContract is the 1:1 agreement record backing a rental. The signing
// token on it is single-use: cleared the moment a signature is accepted.
type RentalContract struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	RentalID           uint       `json:"rentalId" gorm:"uniqueIndex;not null"`
	ContractURL        string     `json:"contractUrl" gorm:"size:512"`
	IsSigned           bool       `json:"isSigned"`
	AgreementAccepted  bool       `json:"agreementAccepted"`
	SigningToken       *string    `json:"-" gorm:"size:64;index"`
	SigningTokenExpiry *time.Time `json:"-"`
	SignerName         string     `json:"signerName" gorm:"size:128"`
	SignerEmail        string     `json:"signerEmail" gorm:"size:128"`
	Verified           bool       `json:"verified"`
	UploadedAt         time.Time  `json:"uploadedAt"`
	SignedAt           *time.Time `json:"signedAt,omitempty"`
}

// HasValidToken reports whether a signing token is present and unexpired at now.
func (c *RentalContract) HasValidToken(now time.Time) bool {
	return c.SigningToken != nil && *c.SigningToken != "" &&
		c.SigningTokenExpiry != nil && c.SigningTokenExpiry.After(now)
}
