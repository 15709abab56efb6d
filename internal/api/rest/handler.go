package rest

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/brainrot-ledger/internal/api/middleware"
	"github.com/feral-file/brainrot-ledger/internal/api/shared/dto"
	"github.com/feral-file/brainrot-ledger/internal/api/shared/executor"
	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetToken retrieves a live token
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// GetOwnerTokens retrieves the tokens of an owner in ownership index order
	// GET /api/v1/owners/:address/tokens
	GetOwnerTokens(c *gin.Context)

	// TransferToken transfers a token owned by the caller (requires authentication)
	// POST /api/v1/tokens/:id/transfer
	TransferToken(c *gin.Context)

	// BurnToken burns a token as the caller (requires authentication)
	// POST /api/v1/tokens/:id/burn
	BurnToken(c *gin.Context)

	// UpgradeToken pays for a level upgrade (requires authentication)
	// POST /api/v1/tokens/:id/upgrade
	UpgradeToken(c *gin.Context)

	// QuoteUpgrade returns the fee of a level upgrade
	// GET /api/v1/tokens/:id/upgrade/quote?target_level=<level>
	QuoteUpgrade(c *gin.Context)

	// BurnForUpgrade burns a recipe set for a token of the next rarity (requires authentication)
	// POST /api/v1/burn-upgrades
	BurnForUpgrade(c *gin.Context)

	// GetCases lists the purchasable cases
	// GET /api/v1/cases
	GetCases(c *gin.Context)

	// BuyCase buys a case (requires authentication)
	// POST /api/v1/cases/purchases
	BuyCase(c *gin.Context)

	// GetPurchase retrieves a case purchase
	// GET /api/v1/cases/purchases/:id
	GetPurchase(c *gin.Context)

	// OpenCase reveals a pending purchase; anyone may open it and the token goes to the buyer (requires authentication)
	// POST /api/v1/cases/purchases/:id/open
	OpenCase(c *gin.Context)

	// GetAccount retrieves the balance of an address
	// GET /api/v1/accounts/:address
	GetAccount(c *gin.Context)

	// GetAccountPurchases lists the case purchases of an address
	// GET /api/v1/accounts/:address/purchases?limit=<limit>
	GetAccountPurchases(c *gin.Context)

	// ListListings lists active listings
	// GET /api/v1/marketplace/listings?seller=<address>&rarity=<rarity>&min_level=<level>&limit=<limit>&offset=<offset>
	ListListings(c *gin.Context)

	// GetListing retrieves the listing of a token
	// GET /api/v1/marketplace/listings/:id
	GetListing(c *gin.Context)

	// CreateListing lists a token (requires authentication)
	// POST /api/v1/marketplace/listings
	CreateListing(c *gin.Context)

	// BuyListing buys a listed token (requires authentication)
	// POST /api/v1/marketplace/listings/:id/buy
	BuyListing(c *gin.Context)

	// CancelListing cancels a listing (requires authentication)
	// DELETE /api/v1/marketplace/listings/:id
	CancelListing(c *gin.Context)

	// GetMinters lists the authorized addresses
	// GET /api/v1/admin/minters
	GetMinters(c *gin.Context)

	// SetMinter changes an authorization flag (requires authentication as the administrator)
	// PUT /api/v1/admin/minters/:address
	SetMinter(c *gin.Context)

	// Deposit credits an account (requires authentication as the administrator)
	// POST /api/v1/admin/deposits
	Deposit(c *gin.Context)

	// Withdraw debits an account (requires authentication as the administrator)
	// POST /api/v1/admin/withdrawals
	Withdraw(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// caller returns the authenticated wallet, responding 401 when there is none
func (h *handler) caller(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
	}
	return caller, ok
}

// bindJSON decodes the request body, responding 422 when it is malformed
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

func (h *handler) GetToken(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	token, err := h.executor.GetToken(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get token")
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *handler) GetOwnerTokens(c *gin.Context) {
	owner, err := parseAddressParam(c, "address")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	resp, err := h.executor.GetOwnerTokens(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err, "Failed to get owner tokens")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) TransferToken(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	to, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid transfer request")
		return
	}

	token, err := h.executor.TransferToken(c.Request.Context(), caller, tokenID, to)
	if err != nil {
		respondError(c, err, "Failed to transfer token")
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *handler) BurnToken(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.executor.BurnToken(c.Request.Context(), caller, tokenID); err != nil {
		respondError(c, err, "Failed to burn token")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) UpgradeToken(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.UpgradeRequest
	if !bindJSON(c, &req) {
		return
	}
	value, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid upgrade request")
		return
	}

	call := domain.NewCall(caller).WithValue(value)
	token, err := h.executor.UpgradeToken(c.Request.Context(), call, tokenID, req.TargetLevel)
	if err != nil {
		respondError(c, err, "Failed to upgrade token")
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *handler) QuoteUpgrade(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var params UpgradeQuoteQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	quote, err := h.executor.QuoteUpgrade(c.Request.Context(), tokenID, params.TargetLevel)
	if err != nil {
		respondError(c, err, "Failed to quote upgrade")
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *handler) BurnForUpgrade(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.BurnUpgradeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid burn upgrade request")
		return
	}

	token, err := h.executor.BurnForUpgrade(c.Request.Context(), domain.NewCall(caller), req.TokenIDs)
	if err != nil {
		respondError(c, err, "Failed to burn for upgrade")
		return
	}

	c.JSON(http.StatusCreated, token)
}

func (h *handler) GetCases(c *gin.Context) {
	resp, err := h.executor.GetCases(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get cases")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) BuyCase(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.BuyCaseRequest
	if !bindJSON(c, &req) {
		return
	}
	value, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid case purchase request")
		return
	}

	call := domain.NewCall(caller).WithValue(value)
	purchase, err := h.executor.BuyCase(c.Request.Context(), call, domain.CaseType(req.CaseType))
	if err != nil {
		respondError(c, err, "Failed to buy case")
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

func (h *handler) GetPurchase(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	purchase, err := h.executor.GetPurchase(c.Request.Context(), purchaseID)
	if err != nil {
		respondError(c, err, "Failed to get purchase")
		return
	}

	c.JSON(http.StatusOK, purchase)
}

func (h *handler) OpenCase(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	resp, err := h.executor.OpenCase(c.Request.Context(), domain.NewCall(caller), purchaseID)
	if err != nil {
		respondError(c, err, "Failed to open case")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetAccount(c *gin.Context) {
	address, err := parseAddressParam(c, "address")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	account, err := h.executor.GetAccount(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *handler) GetAccountPurchases(c *gin.Context) {
	address, err := parseAddressParam(c, "address")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var params PurchasesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.GetAccountPurchases(c.Request.Context(), address, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to get purchases")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListListings(c *gin.Context) {
	params, err := ParseListListingsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.GetListings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list listings")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetListing(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	listing, err := h.executor.GetListing(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get listing")
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *handler) CreateListing(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !bindJSON(c, &req) {
		return
	}
	price, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid listing request")
		return
	}

	listing, err := h.executor.CreateListing(c.Request.Context(), caller, req.TokenID, price)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *handler) BuyListing(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.BuyListingRequest
	if !bindJSON(c, &req) {
		return
	}
	value, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid buy request")
		return
	}

	sale, err := h.executor.BuyListing(c.Request.Context(), domain.NewCall(caller).WithValue(value), tokenID)
	if err != nil {
		respondError(c, err, "Failed to buy listing")
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *handler) CancelListing(c *gin.Context) {
	tokenID, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.executor.CancelListing(c.Request.Context(), caller, tokenID); err != nil {
		respondError(c, err, "Failed to cancel listing")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) GetMinters(c *gin.Context) {
	resp, err := h.executor.GetMinters(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get minters")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) SetMinter(c *gin.Context) {
	address, err := parseAddressParam(c, "address")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.SetMinterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid minter request")
		return
	}

	resp, err := h.executor.SetMinter(c.Request.Context(), caller, address, *req.Authorized)
	if err != nil {
		respondError(c, err, "Failed to set minter")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) Deposit(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if !bindJSON(c, &req) {
		return
	}
	to, amount, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid deposit request")
		return
	}

	account, err := h.executor.Deposit(c.Request.Context(), caller, to, amount)
	if err != nil {
		respondError(c, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *handler) Withdraw(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if !bindJSON(c, &req) {
		return
	}
	from, to, amount, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid withdrawal request")
		return
	}

	account, err := h.executor.Withdraw(c.Request.Context(), caller, from, to, amount)
	if err != nil {
		respondError(c, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, account)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "brainrot-api",
	})
}
