// Package cryptotest provides test-only keypair and CPOE fixture builders,
// grounded 1:1 on massifs/testsignercontext.go and massifs/testcommitter.go's
// Test... helper-constructor convention. Nothing here is imported outside
// _test.go files.
package cryptotest
