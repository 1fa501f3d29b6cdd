package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"emporia/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// receiptSecret signs the QR payload so a printed receipt can be verified
// against the order id later.
var receiptSecret = globals.SessionSecret

// receiptQRPayload returns itemID|timestamp|signature.
func receiptQRPayload(itemID string) string {
	data := fmt.Sprintf("%s|%d", itemID, time.Now().Unix())
	h := hmac.New(sha256.New, receiptSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintReceipt renders a PDF receipt for one order item, with a signed QR
// reference. The item is fetched fresh from the commerce API.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itemID := ps.ByName("itemid")
	token := tokenFromContext(r)

	items, err := Upstream.FilterOrders(r.Context(), token, itemID, "")
	if err != nil || len(items) == 0 {
		log.Println("PrintReceipt lookup error:", err)
		http.Error(w, "Order item not found", http.StatusNotFound)
		return
	}
	item := items[0]

	qrPNG, err := qrcode.Encode(receiptQRPayload(itemID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order Item: %s", itemID))
	pdf.Ln(8)
	if item.Product != nil {
		pdf.Cell(0, 10, fmt.Sprintf("Product: %s", item.Product.Name))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Quantity: %d", item.Quantity))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Price: %.2f", item.Price))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", item.Status))
	pdf.Ln(8)
	if !item.CreatedAt.IsZero() {
		pdf.Cell(0, 10, fmt.Sprintf("Ordered On: %s", item.CreatedAt.Format(time.RFC1123)))
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+itemID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
