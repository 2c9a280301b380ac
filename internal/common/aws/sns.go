// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSService is the subset of the SNS client the publisher needs.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// AlertMessage is the JSON body published for one query's alerts.
type AlertMessage struct {
	RequestID string   `json:"request_id"`
	QueryType string   `json:"query_type"`
	Dataset   string   `json:"dataset,omitempty"`
	Alerts    []string `json:"alerts"`
	RowCount  int      `json:"row_count"`
	Timestamp string   `json:"timestamp"`
}

// AlertPublisher fans pricing alerts out to an SNS topic.
type AlertPublisher struct {
	client   SNSService
	topicARN string
}

func NewAlertPublisher(ctx context.Context, region, topicARN string) (*AlertPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewAlertPublisherWithClient(sns.NewFromConfig(cfg), topicARN), nil
}

func NewAlertPublisherWithClient(client SNSService, topicARN string) *AlertPublisher {
	return &AlertPublisher{client: client, topicARN: topicARN}
}

// PublishAlerts sends one message carrying every alert. Nothing is sent when
// msg has no alerts; the returned id is empty in that case.
func (p *AlertPublisher) PublishAlerts(ctx context.Context, msg AlertMessage) (string, error) {
	if len(msg.Alerts) == 0 {
		return "", nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal alert message: %w", err)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(p.topicARN),
		Subject:  awssdk.String(subject(msg.QueryType)),
		Message:  awssdk.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"query_type": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(msg.QueryType),
			},
			"alert_count": {
				DataType:    awssdk.String("Number"),
				StringValue: awssdk.String(strconv.Itoa(len(msg.Alerts))),
			},
		},
	})
	if err != nil {
		return "", err
	}
	return awssdk.ToString(out.MessageId), nil
}

// SNS subjects are capped at 100 characters.
func subject(queryType string) string {
	s := "Pricing alerts: " + queryType
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
