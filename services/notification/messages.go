package notification

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// Hour12 formats a 24h start hour as "3:00 PM".
func Hour12(hour int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, ampm)
}

// DateLabel formats a YYYY-MM-DD date as "Monday, June 10, 2024". The
// string is decomposed into civil integers first so the label never
// shifts a day across timezones.
func DateLabel(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return "Not specified"
	}
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Format("Monday, January 2, 2006")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// OwnerSubject builds the notification subject line for the operator.
func OwnerSubject(req models.BookingRequest) string {
	if req.IsCallback() {
		return fmt.Sprintf("Call-Back Request - %s - %s", req.Name, req.Service)
	}
	return fmt.Sprintf("New Booking - %s - %s - %s", req.Name, req.Service, DateLabel(req.Date))
}

// OwnerBody builds the plain-text notification body for the operator.
func OwnerBody(req models.BookingRequest, receivedAt time.Time) string {
	var b strings.Builder
	if req.IsCallback() {
		b.WriteString("Call-back request\n\n")
	} else {
		b.WriteString("New appointment request\n\n")
		hour := 0
		if req.Slot != nil {
			hour = *req.Slot
		}
		fmt.Fprintf(&b, "%s at %s\n\n", DateLabel(req.Date), Hour12(hour))
	}
	fmt.Fprintf(&b, "Name:    %s\n", req.Name)
	fmt.Fprintf(&b, "Phone:   %s\n", req.Phone)
	fmt.Fprintf(&b, "Email:   %s\n", orDash(req.Email))
	fmt.Fprintf(&b, "Service: %s\n", req.Service)
	if req.IsCallback() {
		best := req.BestTime
		if strings.TrimSpace(best) == "" {
			best = "Anytime"
		}
		fmt.Fprintf(&b, "Best time: %s\n", best)
	} else {
		fmt.Fprintf(&b, "Address: %s\n", orDash(req.Address))
	}
	fmt.Fprintf(&b, "Notes:   %s\n", orDash(req.Notes))
	fmt.Fprintf(&b, "\nReceived: %s\n", receivedAt.Format("Jan 2, 2006 3:04 PM MST"))
	return b.String()
}

// CustomerSubject builds the confirmation subject for the visitor.
func CustomerSubject(company, date string) string {
	return fmt.Sprintf("Your appointment with %s is confirmed - %s", company, date)
}

// CustomerBody builds the confirmation body sent to the visitor.
func CustomerBody(req models.BookingRequest, company, phone string) string {
	hour := 0
	if req.Slot != nil {
		hour = *req.Slot
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", req.Name)
	fmt.Fprintf(&b, "Thanks for reaching out to %s. Here are your details:\n\n", company)
	fmt.Fprintf(&b, "  Date:    %s\n", DateLabel(req.Date))
	fmt.Fprintf(&b, "  Time:    %s\n", Hour12(hour))
	fmt.Fprintf(&b, "  Service: %s\n\n", req.Service)
	fmt.Fprintf(&b, "We'll see you then. Questions? Reply to this email")
	if phone != "" {
		fmt.Fprintf(&b, " or call us at %s", phone)
	}
	b.WriteString(".\n\n")
	fmt.Fprintf(&b, "- %s\n", company)
	return b.String()
}
