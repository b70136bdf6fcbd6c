package registry

import (
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/aigenerate"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/appointment"
	conditionaction "github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/condition"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/email"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/invoice"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/material"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/notification"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/order"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/quote"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/status"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/actions/wait"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/catalog"
	"github.com/reid15halo-ops/Local-Buisness-automizer-sub000/pkg/collab"
)

// RegisterDefaultActions binds every built-in action kind to its handler.
// Collaborator-backed handlers receive their dependency here, once, so the
// engine dispatches without any per-call lookup of globals.
func (r *Registry) RegisterDefaultActions(records *collab.RecordStore, services collab.Services) {
	r.Register(catalog.ActionCreateQuote, quote.NewAction(records))
	r.Register(catalog.ActionCreateOrder, order.NewAction(records))
	r.Register(catalog.ActionCreateInvoice, invoice.NewAction(records))
	r.Register(catalog.ActionSendEmail, email.NewAction(services.Email))
	r.Register(catalog.ActionUpdateStatus, status.NewAction(records))
	r.Register(catalog.ActionAIGenerate, aigenerate.NewAction(services.TextGen, services.FallbackTextGen))
	r.Register(catalog.ActionWait, wait.NewAction())
	r.Register(catalog.ActionCondition, conditionaction.NewAction())
	r.Register(catalog.ActionCreateAppointment, appointment.NewAction(services.Calendar))
	r.Register(catalog.ActionReserveMaterial, material.NewAction(services.Inventory))
	r.Register(catalog.ActionSendNotification, notification.NewAction(services.Notifier))
}
