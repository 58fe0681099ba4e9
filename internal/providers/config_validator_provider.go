package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"medreminder/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	if c.conf.Notifier.Backend == "webhook" && c.conf.Notifier.WebhookURL == "" {
		return errors.New("invalid config: notifier.webhookURL is required for webhook backend")
	}
	return nil
}
