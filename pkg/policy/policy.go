// Package policy decides whether an actor may perform an action on a
// resource. Rules live in a single table so every permission in the API can
// be read in one place.
package policy

import (
	"github.com/DurjoyKumar177/CrisisAid-Backend/domain"
	"github.com/DurjoyKumar177/CrisisAid-Backend/entities"
	"github.com/google/uuid"
)

type Action string

const (
	ReadPost          Action = "post:read"
	CreatePost        Action = "post:create"
	EditPost          Action = "post:edit"
	DeletePost        Action = "post:delete"
	ReviewPost        Action = "post:review"
	AddSection        Action = "post:add_section"
	ListAllStatuses   Action = "post:list_all_statuses"
	Apply             Action = "volunteer:apply"
	ReviewApplication Action = "volunteer:review"
	ListApplications  Action = "volunteer:list_for_post"
	Donate            Action = "donation:create"
	CreateUpdate      Action = "update:create"
	EditUpdate        Action = "update:edit"
	DeleteUpdate      Action = "update:delete"
	CreateComment     Action = "comment:create"
	EditComment       Action = "comment:edit"
	DeleteComment     Action = "comment:delete"
)

// Resource is the part of an entity's state the rules look at.
type Resource struct {
	OwnerID     uuid.UUID
	PostOwnerID uuid.UUID
	Status      domain.Status
}

type grant func(actor domain.Actor, r Resource) bool

func anyone(domain.Actor, Resource) bool { return true }

func authenticated(a domain.Actor, _ Resource) bool { return a.IsAuthenticated() }

func admin(a domain.Actor, _ Resource) bool { return a.IsAuthenticated() && a.IsAdmin }

func owner(a domain.Actor, r Resource) bool { return a.Is(r.OwnerID) }

func postOwner(a domain.Actor, r Resource) bool { return a.Is(r.PostOwnerID) }

func approved(_ domain.Actor, r Resource) bool { return r.Status == domain.StatusApproved }

// A request is allowed when any grant listed for its action matches.
var rules = map[Action][]grant{
	ReadPost:          {approved, admin, owner},
	CreatePost:        {authenticated},
	EditPost:          {owner},
	DeletePost:        {owner},
	ReviewPost:        {admin},
	AddSection:        {owner, admin},
	ListAllStatuses:   {admin},
	Apply:             {authenticated},
	ReviewApplication: {admin, postOwner},
	ListApplications:  {admin, postOwner},
	Donate:            {anyone},
	CreateUpdate:      {authenticated},
	EditUpdate:        {owner},
	DeleteUpdate:      {owner},
	CreateComment:     {authenticated},
	EditComment:       {owner},
	DeleteComment:     {owner},
}

func Can(actor domain.Actor, action Action, r Resource) bool {
	for _, g := range rules[action] {
		if g(actor, r) {
			return true
		}
	}
	return false
}

// Authorize is Can reported as an error. Denials carry no detail beyond
// the forbidden kind.
func Authorize(actor domain.Actor, action Action, r Resource) error {
	if !Can(actor, action, r) {
		return domain.ErrForbidden
	}
	return nil
}

func PostResource(p *entities.CrisisPost) Resource {
	return Resource{
		OwnerID:     p.OwnerID,
		PostOwnerID: p.OwnerID,
		Status:      domain.Status(p.Status),
	}
}

func ApplicationResource(a *entities.VolunteerApplication, post *entities.CrisisPost) Resource {
	return Resource{
		OwnerID:     a.UserID,
		PostOwnerID: post.OwnerID,
		Status:      domain.Status(a.Status),
	}
}

func UpdateResource(u *entities.CrisisUpdate) Resource {
	r := Resource{OwnerID: u.CreatorID}
	if u.CrisisPost != nil {
		r.PostOwnerID = u.CrisisPost.OwnerID
	}
	return r
}

func CommentResource(c *entities.Comment) Resource {
	return Resource{OwnerID: c.UserID}
}
