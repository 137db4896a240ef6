// Package translation translates text blocks into the learner's native
// language through the model backend. It includes a small in-memory cache
// so repeated lookups of the same selection do not cost another call.
package translation
