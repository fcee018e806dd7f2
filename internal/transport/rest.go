package transport

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/hdwallet"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/hdwallet/coinselect"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/wallet"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 16

var errBadRequest = errors.New("bad request")

// Handler serves the wallet REST API.
type Handler struct {
	wallet WalletService
	logger *zap.Logger
}

// NewHandler returns a Handler instance.
func NewHandler(svc WalletService, logger *zap.Logger) *Handler {
	return &Handler{wallet: svc, logger: logger}
}

// Routes registers the API on a gateway mux and adds the metrics endpoint, CORS-wrapped.
func (h *Handler) Routes() (http.Handler, error) {
	gw := gwruntime.NewServeMux()
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/status", h.status},
		{http.MethodGet, "/v1/accounts", h.listAccounts},
		{http.MethodPost, "/v1/accounts", h.createAccount},
		{http.MethodPut, "/v1/accounts/{account}/name", h.renameAccount},
		{http.MethodGet, "/v1/accounts/{account}/receive", h.nextReceiveAddress},
		{http.MethodGet, "/v1/accounts/{account}/receive/{count}", h.nextReceiveAddresses},
		{http.MethodGet, "/v1/accounts/{account}/change", h.nextChangeAddress},
		{http.MethodGet, "/v1/addresses/{address}", h.findAddress},
		{http.MethodGet, "/v1/unspent", h.listUnspent},
		{http.MethodPost, "/v1/accounts/{account}/select", h.selectCoins},
	}
	for _, route := range routes {
		if err := gw.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
	}).Handler(mux), nil
}

type statusResponse struct {
	WalletID string     `json:"walletId"`
	Network  string     `json:"network"`
	Height   int64      `json:"height"`
	Keys     int        `json:"keys"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

type accountResponse struct {
	Index            uint32 `json:"index"`
	Name             string `json:"name"`
	XPub             string `json:"xpub"`
	Balance          int64  `json:"balance"`
	Available        int64  `json:"available"`
	ReceiveAddresses int    `json:"receiveAddresses"`
	ChangeAddresses  int    `json:"changeAddresses"`
}

type addressResponse struct {
	Account     uint32 `json:"account"`
	AccountName string `json:"accountName"`
	Chain       string `json:"chain"`
	IsReceive   bool   `json:"isReceive"`
	Index       uint32 `json:"index"`
	Address     string `json:"address"`
	Balance     int64  `json:"balance"`
	Available   int64  `json:"available"`
	Unused      bool   `json:"unused"`
}

type outputResponse struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Value         int64  `json:"value"`
	PkScript      string `json:"pkScript"`
	Confirmations int64  `json:"confirmations"`
}

type selectionResponse struct {
	Outputs []outputResponse `json:"outputs"`
	Total   int64            `json:"total"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type selectRequest struct {
	Target int64 `json:"target"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toAccountResponse(info wallet.AccountInfo) accountResponse {
	return accountResponse{
		Index:            info.Index,
		Name:             info.Name,
		XPub:             info.XPub,
		Balance:          int64(info.Balance),
		Available:        int64(info.Available),
		ReceiveAddresses: info.ReceiveAddresses,
		ChangeAddresses:  info.ChangeAddresses,
	}
}

func toAddressResponse(info wallet.AddressInfo) addressResponse {
	return addressResponse{
		Account:     info.Account,
		AccountName: info.AccountName,
		Chain:       info.Chain,
		IsReceive:   info.IsReceive,
		Index:       info.Index,
		Address:     info.Address,
		Balance:     int64(info.Balance),
		Available:   int64(info.Available),
		Unused:      info.Unused,
	}
}

func toOutputResponses(outputs []model.Output) []outputResponse {
	resp := make([]outputResponse, 0, len(outputs))
	for _, out := range outputs {
		resp = append(resp, outputResponse{
			TxID:          out.OutPoint.Hash.String(),
			Vout:          out.OutPoint.Index,
			Value:         int64(out.Value),
			PkScript:      hex.EncodeToString(out.PkScript),
			Confirmations: out.Confirmations,
		})
	}
	return resp
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	resp := statusResponse{
		WalletID: h.wallet.ID(),
		Network:  string(h.wallet.Network()),
		Height:   h.wallet.Height(),
		Keys:     h.wallet.KeyCount(),
	}
	if birthday := h.wallet.Birthday(); !birthday.IsZero() {
		resp.Birthday = &birthday
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listAccounts(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	infos := h.wallet.Accounts()
	resp := make([]accountResponse, 0, len(infos))
	for _, info := range infos {
		resp = append(resp, toAccountResponse(info))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req, err := decodeName(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	info, err := h.wallet.CreateAccount(req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toAccountResponse(info))
}

func (h *Handler) renameAccount(w http.ResponseWriter, r *http.Request, params map[string]string) {
	index, err := accountParam(params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	req, err := decodeName(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	info, err := h.wallet.RenameAccount(index, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAccountResponse(info))
}

func (h *Handler) nextReceiveAddress(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	index, err := accountParam(params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	info, err := h.wallet.NextReceiveAddress(index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAddressResponse(info))
}

func (h *Handler) nextReceiveAddresses(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	index, err := accountParam(params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	count, err := strconv.Atoi(params["count"])
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: count %q", errBadRequest, params["count"]))
		return
	}
	infos, err := h.wallet.NextReceiveAddresses(index, count)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := make([]addressResponse, 0, len(infos))
	for _, info := range infos {
		resp = append(resp, toAddressResponse(info))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) nextChangeAddress(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	index, err := accountParam(params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	info, err := h.wallet.NextChangeAddress(index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAddressResponse(info))
}

func (h *Handler) findAddress(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	info, err := h.wallet.FindAddress(params["address"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAddressResponse(info))
}

func (h *Handler) listUnspent(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	h.writeJSON(w, http.StatusOK, toOutputResponses(h.wallet.Unspent()))
}

func (h *Handler) selectCoins(w http.ResponseWriter, r *http.Request, params map[string]string) {
	index, err := accountParam(params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req selectRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Target <= 0 {
		h.writeError(w, fmt.Errorf("%w: target must be positive", errBadRequest))
		return
	}
	selection, err := h.wallet.SelectCoins(index, btcutil.Amount(req.Target))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, selectionResponse{
		Outputs: toOutputResponses(selection.Outputs),
		Total:   int64(selection.Total),
	})
}

func accountParam(params map[string]string) (uint32, error) {
	index, err := strconv.ParseUint(params["account"], 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: account %q", errBadRequest, params["account"])
	}
	return uint32(index), nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func decodeName(w http.ResponseWriter, r *http.Request) (nameRequest, error) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nameRequest{}, err
	}
	if req.Name == "" {
		return nameRequest{}, fmt.Errorf("%w: name is required", errBadRequest)
	}
	return req, nil
}

func statusCode(err error) int {
	var insufficient *coinselect.ErrInsufficientFunds
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, wallet.ErrInvalidAddress),
		errors.Is(err, hdwallet.ErrInvalidCount),
		errors.Is(err, hdwallet.ErrExceedsSafeExtend):
		return http.StatusBadRequest
	case errors.Is(err, wallet.ErrAccountNotFound),
		errors.Is(err, wallet.ErrAddressNotFound):
		return http.StatusNotFound
	case errors.Is(err, hdwallet.ErrInsufficientMargin),
		errors.Is(err, hdwallet.ErrNoUnusedAddress):
		return http.StatusConflict
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		msg = http.StatusText(code)
	}
	h.writeJSON(w, code, errorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}
