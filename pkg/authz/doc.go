// Package authz contains the two access-control gates applied to every
// protected operation after identity resolution.
//
// The role gate is coarse: it checks that the caller is the right kind of
// account (owner or customer) by exact equality. The ownership gate is
// fine: it checks that an owner actually owns the specific project or
// requirement being touched, walking the requirement → project → owner
// relationship live on every check rather than trusting a denormalized
// field.
package authz
