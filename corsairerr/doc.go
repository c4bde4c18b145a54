// Package corsairerr maps this module's internal error kinds to the wire
// error taxonomy of §6/§7: a structured `{ok:false, error:{code, message}}`
// envelope with one of a fixed set of HTTP-status-aligned codes. Internal
// packages never import this package; only an HTTP (or other transport)
// boundary layer does, keeping the core's sentinel errors (keystore.Err...,
// signer.Err..., didweb.Err..., translog.Err...) free of any wire concern.
package corsairerr
