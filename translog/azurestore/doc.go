// Package azurestore adapts translog.Log's entries to durable storage over
// Azure Blob Storage, through the same go-datatrails-common/azblob wrapper
// the teacher's massifs package uses for its committed log blobs (see
// massifs.MassifCommitter). The transparency log itself stays in-memory and
// authoritative for serving proofs; this package exists for restart
// durability, mirroring the commit-then-read split of massifcommitter.go /
// massifreader.go.
package azurestore
