//go:build exactbinding

package signature

// exactBinding requires type equality for by-value positions.
const exactBinding = true
