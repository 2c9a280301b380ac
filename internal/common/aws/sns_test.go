package aws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

func TestPublishAlerts(t *testing.T) {
	var got *sns.PublishInput
	mock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			got = params
			return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
		},
	}
	p := NewAlertPublisherWithClient(mock, "arn:aws:sns:eu-west-1:123456789012:pricing-alerts")

	id, err := p.PublishAlerts(context.Background(), AlertMessage{
		RequestID: "req-1",
		QueryType: "competitor_tracking",
		Alerts:    []string{"⚠️ a", "⚠️ b"},
		RowCount:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	require.NotNil(t, got)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:pricing-alerts", awssdk.ToString(got.TopicArn))
	assert.Equal(t, "Pricing alerts: competitor_tracking", awssdk.ToString(got.Subject))
	assert.Equal(t, "2", awssdk.ToString(got.MessageAttributes["alert_count"].StringValue))

	var body AlertMessage
	require.NoError(t, json.Unmarshal([]byte(awssdk.ToString(got.Message)), &body))
	assert.Equal(t, []string{"⚠️ a", "⚠️ b"}, body.Alerts)
	assert.Equal(t, "req-1", body.RequestID)
}

func TestPublishAlerts_NoAlerts(t *testing.T) {
	mock := &MockSNSService{}
	p := NewAlertPublisherWithClient(mock, "arn")

	id, err := p.PublishAlerts(context.Background(), AlertMessage{QueryType: "price_elasticity"})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Zero(t, mock.calls)
}

func TestPublishAlerts_Error(t *testing.T) {
	mock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("SNS service unavailable")
		},
	}
	p := NewAlertPublisherWithClient(mock, "arn")

	_, err := p.PublishAlerts(context.Background(), AlertMessage{QueryType: "x", Alerts: []string{"a"}})
	assert.EqualError(t, err, "SNS service unavailable")
}

func TestSubject_Truncated(t *testing.T) {
	assert.Len(t, subject(strings.Repeat("x", 200)), 100)
}
