// Package access decides, for a (survey, link owner, authenticated user)
// triple, whether access is granted and whose draft is being read or
// written. Every gated entry point resolves through here; there is no
// second authorization path.
package access

import (
	"context"
	"errors"
	"fmt"

	"formlink/errs"
	"formlink/model"
)

// Role of the caller relative to the resolved draft.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleShared Role = "shared"
	RoleNone   Role = "none"
)

type Decision struct {
	Granted          bool   `json:"granted"`
	Role             Role   `json:"role"`
	EffectiveOwnerID string `json:"effectiveOwnerId,omitempty"`
}

type SurveySource interface {
	Exists(ctx context.Context, surveyID int) (bool, error)
}

type GrantSource interface {
	GrantFor(ctx context.Context, surveyID int, sharedWith string) (model.ShareGrant, error)
}

type Resolver struct {
	surveys SurveySource
	grants  GrantSource
}

func NewResolver(surveys SurveySource, grants GrantSource) *Resolver {
	return &Resolver{surveys, grants}
}

// Resolve runs the decision procedure; the first matching rule wins.
//
//  1. The link was minted for the caller: owner access under the link's id.
//  2. A grant keyed (survey, caller) exists and is not being replayed
//     against a different owner's link: shared access under the grant's
//     owner.
//  3. Otherwise: denied.
//
// A missing survey is NotFound, not a denial; the two stay distinguishable
// here even where an endpoint renders them identically.
func (r *Resolver) Resolve(ctx context.Context, surveyID int, userID, linkOwnerID string) (Decision, error) {
	denied := Decision{Role: RoleNone}

	if userID == "" {
		return denied, fmt.Errorf("authenticated user id is required: %w", errs.ErrInvalidRequest)
	}

	exists, err := r.surveys.Exists(ctx, surveyID)
	if err != nil {
		return denied, err
	}
	if !exists {
		return denied, fmt.Errorf("survey %d: %w", surveyID, errs.ErrNotFound)
	}

	if linkOwnerID != "" && linkOwnerID == userID {
		return Decision{Granted: true, Role: RoleOwner, EffectiveOwnerID: linkOwnerID}, nil
	}

	grant, err := r.grants.GrantFor(ctx, surveyID, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return denied, nil
	}
	if err != nil {
		return denied, err
	}

	// a grant cannot be replayed against a different owner's link
	if linkOwnerID != "" && linkOwnerID != grant.OwnerID {
		return denied, nil
	}

	return Decision{Granted: true, Role: RoleShared, EffectiveOwnerID: grant.OwnerID}, nil
}
