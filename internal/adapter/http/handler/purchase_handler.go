package handler

import (
	"math/big"

	"mystery-box-service/internal/adapter/http/dto"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/pkg/apperror"
	"mystery-box-service/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles the purchase pipeline endpoints.
type PurchaseHandler struct {
	purchaseSvc ports.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseSvc ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc}
}

// Authorize handles POST /api/v1/purchases/authorize.
func (h *PurchaseHandler) Authorize(c *gin.Context) {
	var req dto.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.purchaseSvc.IssueAuthorization(c.Request.Context(), ports.IssueRequest{
		BoxType:    req.BoxType,
		Wallet:     common.HexToAddress(req.Wallet),
		ClientSeed: req.ClientSeed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AuthorizeResponse{
		BoxType:      result.BoxType,
		AmountToBurn: result.AmountToBurn.String(),
		Timestamp:    result.Timestamp,
		MessageHash:  result.MessageHash.Hex(),
		Signature:    result.Signature,
	})
}

// Settle handles POST /api/v1/purchases/settle.
func (h *PurchaseHandler) Settle(c *gin.Context) {
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	// Validated as a positive decimal string by binding.
	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		response.Error(c, apperror.Validation("amount is not a valid integer"))
		return
	}

	result, err := h.purchaseSvc.SettlePurchase(c.Request.Context(), ports.SettleRequest{
		BoxType:    req.BoxType,
		Wallet:     common.HexToAddress(req.Wallet),
		Amount:     amount,
		Timestamp:  req.Timestamp,
		TxHash:     common.HexToHash(req.TxHash),
		Signature:  common.FromHex(req.Signature),
		ClientSeed: req.ClientSeed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toSettleResponse(result))
}

// toSettleResponse converts the service result to the wire shape.
func toSettleResponse(r *ports.SettleResult) dto.SettleResponse {
	prize := dto.PrizeResponse{
		ID:   r.PrizeID,
		Name: r.PrizeName,
		Type: string(r.PrizeType),
	}
	if r.AmountWei != nil {
		prize.AmountWei = r.AmountWei.String()
	}

	settlement := dto.SettlementResponse{
		Status:      string(r.Settlement.Status),
		TxHash:      r.Settlement.TxHash,
		MetadataURI: r.Settlement.MetadataURI,
	}
	if r.Settlement.MintedTokenID != nil {
		settlement.MintedTokenID = r.Settlement.MintedTokenID.String()
	}

	return dto.SettleResponse{
		PurchaseID: r.PurchaseID,
		Prize:      prize,
		Settlement: settlement,
		Random: dto.RandomResponse{
			ClientSeed: r.Random.ClientSeed,
			ServerSeed: r.Random.ServerSeed,
			Nonce:      r.Random.Nonce,
			Hash:       r.Random.Hash,
			Value:      r.Random.Value,
		},
		UsedFallback: r.UsedFallback,
	}
}
