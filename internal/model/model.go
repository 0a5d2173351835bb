// Package model defines the records served by the API: Image, Administrator
// and Contact, plus the partial-update rules applied on PUT.
package model

// pick returns update when it is non-empty, otherwise current.
func pick(current, update string) string {
	if update != "" {
		return update
	}
	return current
}
