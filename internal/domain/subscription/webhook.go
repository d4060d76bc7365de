package subscription

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// HandleWebhook processes incoming Stripe webhooks. Only
// checkout.session.completed matters: it records the payment order and
// activates the club, same as the manual path but with method=online.
func (c *Checkout) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const MaxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("webhook: error reading request body: %v", err)
		http.Error(w, "Error reading request body", http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, c.config.WebhookSecret)
	if err != nil {
		log.Printf("webhook: signature verification failed: %v", err)
		http.Error(w, fmt.Sprintf("Webhook signature verification failed: %v", err), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	log.Printf("webhook: received event type=%s id=%s", event.Type, event.ID)

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("webhook: error parsing checkout session: %v", err)
			http.Error(w, fmt.Sprintf("Error parsing webhook JSON: %v", err), http.StatusBadRequest)
			return
		}

		clubID := sess.Metadata["clubId"]
		kind := sess.Metadata["kind"]
		if clubID == "" || !IsValidKind(kind) {
			log.Printf("webhook: checkout session %s missing club metadata", sess.ID)
			break
		}

		_, err := c.svc.RecordPayment(ctx, clubID, RecordPaymentInput{
			Kind:   kind,
			Method: MethodOnline,
			Notes:  "stripe checkout " + sess.ID,
		})
		if err != nil {
			// Acknowledge receipt anyway; Stripe retries would double-record.
			log.Printf("webhook: recording payment for club %s failed: %v", clubID, err)
		}

	default:
		// Ignore everything else.
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"received": true}`))
}
