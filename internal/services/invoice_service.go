package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/casahub/backend/internal/models"
)

// InvoiceService renders order invoices as PDF.
type InvoiceService struct {
	sellerName    string
	sellerAddress string
}

func NewInvoiceService(sellerName, sellerAddress string) *InvoiceService {
	if sellerName == "" {
		sellerName = "CasaHub Marketplace"
	}
	return &InvoiceService{sellerName: sellerName, sellerAddress: sellerAddress}
}

// Render produces the invoice PDF for a populated order.
func (s *InvoiceService) Render(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, s.sellerName)
	pdf.Ln(8)
	if s.sellerAddress != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 8, s.sellerAddress)
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 12, "Tax Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice no: %s", order.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Order date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(5)
	if order.RazorpayPaymentID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Payment reference: %s", order.RazorpayPaymentID))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if addr := order.DeliveryAddress; addr != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Ship to")
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 5, addr.FullName)
		pdf.Ln(4)
		pdf.Cell(0, 5, addr.Address)
		pdf.Ln(4)
		pdf.Cell(0, 5, fmt.Sprintf("%s, %s - %s", addr.City, addr.District, addr.Pincode))
		pdf.Ln(4)
		pdf.Cell(0, 5, fmt.Sprintf("Phone: %s", addr.Mobile))
		pdf.Ln(8)
	}

	// Line items table.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", true, 0, "")

	name := order.Product.ProductID
	if order.Product.Product != nil {
		name = order.Product.Product.Name
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("Rs. %.2f", order.Product.Price), "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, fmt.Sprintf("%d", order.Product.Quantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", order.Product.Price*float64(order.Product.Quantity)), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", order.TotalAmount), "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "This is a computer generated invoice and does not require a signature.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
