package pos

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const receiptWidth = 32

var rupiah = message.NewPrinter(language.Indonesian)

// RenderReceipt produces the plain-text receipt for a committed sale,
// sized for a 32-column thermal printer.
func RenderReceipt(store StoreInfo, txn Transaction) string {
	var b strings.Builder

	writeCentered(&b, store.Name)
	writeCentered(&b, store.Address)
	writeCentered(&b, store.Phone)
	writeRule(&b)

	fmt.Fprintf(&b, "%s\n", txn.CreatedAt.Local().Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "Kasir: %s\n", txn.CashierName)
	fmt.Fprintf(&b, "No: %s\n", txn.ID)
	writeRule(&b)

	for _, item := range txn.Items {
		fmt.Fprintf(&b, "%s\n", item.Product.Name)
		left := rupiah.Sprintf("%d x Rp %d", item.Quantity, item.Product.Price)
		right := rupiah.Sprintf("Rp %d", item.Quantity*item.Product.Price)
		writeSplit(&b, left, right)
	}
	writeRule(&b)

	writeSplit(&b, "Subtotal", rupiah.Sprintf("Rp %d", txn.Subtotal))
	if txn.Discount > 0 {
		label := "Diskon"
		if txn.VoucherCode != nil {
			label = "Diskon (" + *txn.VoucherCode + ")"
		}
		writeSplit(&b, label, rupiah.Sprintf("-Rp %d", txn.Discount))
	}
	writeSplit(&b, "Total", rupiah.Sprintf("Rp %d", txn.Total))
	writeSplit(&b, "Bayar", strings.ToUpper(string(txn.PaymentMethod)))
	writeRule(&b)

	writeCentered(&b, "Terima kasih!")
	return b.String()
}

func writeRule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", receiptWidth))
	b.WriteByte('\n')
}

func writeCentered(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	if len(s) >= receiptWidth {
		b.WriteString(s)
		b.WriteByte('\n')
		return
	}
	pad := (receiptWidth - len(s)) / 2
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(s)
	b.WriteByte('\n')
}

func writeSplit(b *strings.Builder, left, right string) {
	gap := receiptWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteByte('\n')
}
