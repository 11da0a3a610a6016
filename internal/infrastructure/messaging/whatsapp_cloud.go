package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

var _ ports.OrderDispatcher = (*WhatsAppCloudDispatcher)(nil)

// WhatsAppCloudDispatcher envía el pedido al vendedor con la WhatsApp Cloud API.
// Usa net/http de la librería estándar; no requiere SDK.
type WhatsAppCloudDispatcher struct {
	baseURL       string
	phoneNumberID string
	token         string
	httpClient    *http.Client
	log           *logger.Logger
}

func NewWhatsAppCloudDispatcher(baseURL, phoneNumberID, token string, log *logger.Logger) *WhatsAppCloudDispatcher {
	return &WhatsAppCloudDispatcher{
		baseURL:       strings.TrimRight(baseURL, "/"),
		phoneNumberID: phoneNumberID,
		token:         token,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		log:           log.Named("whatsapp"),
	}
}

// ── Estructuras del protocolo ────────────────────────────────────────────────

type cloudTextMessage struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Text             cloudText `json:"text"`
}

type cloudText struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type cloudResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (d *WhatsAppCloudDispatcher) Dispatch(ctx context.Context, order ports.OrderDispatch) (ports.DispatchResult, error) {
	if d.token == "" || d.phoneNumberID == "" {
		return ports.DispatchResult{}, fmt.Errorf("whatsapp: WHATSAPP_TOKEN/WHATSAPP_PHONE_NUMBER_ID no configurados")
	}
	body, err := json.Marshal(cloudTextMessage{
		MessagingProduct: "whatsapp",
		To:               order.Recipient,
		Type:             "text",
		Text:             cloudText{Body: order.Message},
	})
	if err != nil {
		return ports.DispatchResult{}, fmt.Errorf("whatsapp: serializar request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", d.baseURL, d.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.DispatchResult{}, fmt.Errorf("whatsapp: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return ports.DispatchResult{}, fmt.Errorf("whatsapp: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return ports.DispatchResult{}, fmt.Errorf("whatsapp: leer respuesta: %w", err)
	}
	var cr cloudResponse
	_ = json.Unmarshal(raw, &cr)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if cr.Error != nil {
			return ports.DispatchResult{}, fmt.Errorf("whatsapp: error (%d): %s", cr.Error.Code, cr.Error.Message)
		}
		return ports.DispatchResult{}, fmt.Errorf("whatsapp: HTTP %d: %s", resp.StatusCode, string(raw))
	}
	if len(cr.Messages) > 0 {
		d.log.Info().Str("message_id", cr.Messages[0].ID).Msg("pedido enviado por WhatsApp Cloud API")
	}
	return ports.DispatchResult{Delivered: true}, nil
}
