package secondary

// SMTPClient sends transactional mail.
type SMTPClient interface {
	Send(to, subject, html string) error
}
