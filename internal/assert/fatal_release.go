//go:build !brushdebug

package assert

const fatal = false
