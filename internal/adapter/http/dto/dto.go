package dto

// AuthorizeRequest is the request body for POST /api/v1/purchases/authorize.
type AuthorizeRequest struct {
	BoxType    int    `json:"box_type" binding:"required,min=1"`
	Wallet     string `json:"wallet" binding:"required,eth_addr"`
	ClientSeed string `json:"client_seed" binding:"required,max=64,seed"`
}

// AuthorizeResponse is the signed burn authorization returned to the
// client. The amount rides as a decimal string: 18-decimal token
// amounts overflow JSON numbers.
type AuthorizeResponse struct {
	BoxType      int    `json:"box_type"`
	AmountToBurn string `json:"amount_to_burn"`
	Timestamp    int64  `json:"timestamp"`
	MessageHash  string `json:"message_hash"`
	Signature    string `json:"signature"`
}

// SettleRequest is the request body for POST /api/v1/purchases/settle.
// Wallet, amount and timestamp must be exactly the authorized triple.
type SettleRequest struct {
	BoxType    int    `json:"box_type" binding:"required,min=1"`
	Wallet     string `json:"wallet" binding:"required,eth_addr"`
	Amount     string `json:"amount" binding:"required,numeric_string"`
	Timestamp  int64  `json:"timestamp" binding:"required,gt=0"`
	TxHash     string `json:"tx_hash" binding:"required,eth_hash"`
	Signature  string `json:"signature" binding:"required,eth_sig"`
	ClientSeed string `json:"client_seed" binding:"required,max=64,seed"`
}

// PrizeResponse describes the awarded prize.
type PrizeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	AmountWei string `json:"amount_wei,omitempty"`
}

// SettlementResponse describes the settlement outcome.
type SettlementResponse struct {
	Status        string `json:"status"`
	TxHash        string `json:"tx_hash,omitempty"`
	MintedTokenID string `json:"minted_token_id,omitempty"`
	MetadataURI   string `json:"metadata_uri,omitempty"`
}

// RandomResponse reveals the draw material so the client can audit the
// result: SHA-256(client_seed:server_seed:nonce) must equal hash.
type RandomResponse struct {
	ClientSeed string  `json:"client_seed"`
	ServerSeed string  `json:"server_seed"`
	Nonce      uint64  `json:"nonce"`
	Hash       string  `json:"hash"`
	Value      float64 `json:"value"`
}

// SettleResponse is the response body for a settled purchase.
type SettleResponse struct {
	PurchaseID   string             `json:"purchase_id"`
	Prize        PrizeResponse      `json:"prize"`
	Settlement   SettlementResponse `json:"settlement"`
	Random       RandomResponse     `json:"random"`
	UsedFallback bool               `json:"used_fallback"`
}
