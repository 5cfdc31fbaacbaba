// Package metrics registers the workflow's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Workflow counts the orchestrator's externally observable outcomes.
type Workflow struct {
	chatMessages  *prometheus.CounterVec
	decisions     *prometheus.CounterVec
	verifications *prometheus.CounterVec
	letters       prometheus.Counter
}

// NewWorkflow registers the workflow counters on the default registry.
func NewWorkflow() *Workflow {
	return &Workflow{
		chatMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "loanops_chat_messages_total",
			Help: "Chat turns processed, labelled by resulting workflow stage.",
		}, []string{"stage"}),
		decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "loanops_underwriting_decisions_total",
			Help: "Underwriting decisions, labelled by outcome.",
		}, []string{"decision"}),
		verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "loanops_verification_outcomes_total",
			Help: "Verification gate outcomes.",
		}, []string{"outcome"}),
		letters: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanops_sanction_letters_total",
			Help: "Sanction letters rendered.",
		}),
	}
}

func (w *Workflow) ChatMessage(stage string) { w.chatMessages.WithLabelValues(stage).Inc() }

func (w *Workflow) Decision(decision string) { w.decisions.WithLabelValues(decision).Inc() }

func (w *Workflow) VerificationOutcome(outcome string) {
	w.verifications.WithLabelValues(outcome).Inc()
}

func (w *Workflow) LetterRendered() { w.letters.Inc() }
