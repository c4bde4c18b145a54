package receipt

// Receipt is one step's unsigned record: what ran, its input/output
// digests, and the link back to the previous receipt in the chain.
type Receipt struct {
	Step         string  `json:"step"`
	InputHash    string  `json:"inputHash"`
	OutputHash   string  `json:"outputHash"`
	Timestamp    int64   `json:"timestamp"`
	PrevHash     string  `json:"prevHash"`
	Reproducible bool    `json:"reproducible"`
	Attestation  *string `json:"attestation,omitempty"`
}

// SignedReceipt is a Receipt plus the active key's signature over its
// canonical form.
type SignedReceipt struct {
	Receipt
	KeyID     string `json:"keyId"`
	Signature string `json:"signature"`
}

// VerifyResult is VerifyChain's structured outcome (§4.7).
type VerifyResult struct {
	ChainValid        bool
	ReceiptsVerified   int
	ReceiptsTotal      int
	ReproducibleSteps int
	AttestedSteps     int
	ChainDigest       string
}
