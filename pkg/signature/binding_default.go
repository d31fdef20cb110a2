//go:build !exactbinding

package signature

// exactBinding selects directional subtyping for by-value positions.
const exactBinding = false
