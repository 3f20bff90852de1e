// Package provider contains the adapter issuing record-set mutations
// against Amazon Route 53.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/poyrazK/dnsgate/internal/core/domain"
	"github.com/poyrazK/dnsgate/internal/infrastructure/metrics"
)

// Route53API is the subset of the Route 53 client the adapter uses.
type Route53API interface {
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// Route53Provider implements ports.DNSProvider. Every call submits exactly
// one change batch containing exactly one change entry; there is no
// batching of multiple names.
type Route53Provider struct {
	client Route53API
	logger *slog.Logger
}

// NewRoute53Provider creates and returns a new Route53Provider instance.
func NewRoute53Provider(client Route53API, logger *slog.Logger) *Route53Provider {
	return &Route53Provider{client: client, logger: logger}
}

func (p *Route53Provider) ChangeRecordSet(ctx context.Context, action domain.ChangeAction, recordSet domain.ResourceRecordSet, hostedZoneID string) (string, error) {
	input := &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(hostedZoneID),
		ChangeBatch: &r53types.ChangeBatch{
			Changes: []r53types.Change{
				{
					Action:            r53types.ChangeAction(action),
					ResourceRecordSet: toRoute53RecordSet(recordSet),
				},
			},
		},
	}

	start := time.Now()
	out, err := p.client.ChangeResourceRecordSets(ctx, input)
	metrics.ProviderCallDuration.WithLabelValues(string(action)).Observe(time.Since(start).Seconds())

	if err != nil {
		p.logger.Error("route53 change rejected", "action", action, "name", recordSet.Name, "error", err)
		return "", domain.WrapError(domain.KindProvider, err, fmt.Sprintf("Route53 error: %q", err.Error()))
	}

	changeID := ""
	if out.ChangeInfo != nil {
		changeID = aws.ToString(out.ChangeInfo.Id)
	}
	p.logger.Info("route53 change submitted", "action", action, "name", recordSet.Name, "change_id", changeID)

	return fmt.Sprintf("Action: %s - %s", action, recordSet.Name), nil
}

func toRoute53RecordSet(recordSet domain.ResourceRecordSet) *r53types.ResourceRecordSet {
	rs := &r53types.ResourceRecordSet{
		Name: aws.String(recordSet.Name),
		Type: r53types.RRType(recordSet.Type),
	}
	if recordSet.TTL > 0 {
		rs.TTL = aws.Int64(recordSet.TTL)
	}
	for _, rr := range recordSet.ResourceRecords {
		rs.ResourceRecords = append(rs.ResourceRecords, r53types.ResourceRecord{Value: aws.String(rr.Value)})
	}
	return rs
}
