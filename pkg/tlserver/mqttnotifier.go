package tlserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/function61/gokit/crypto/cryptoutil"
	"github.com/function61/gokit/log/logex"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

// paho doesn't name the QoS levels
const (
	MqttQos0AtMostOnce  = byte(0)
	MqttQos1LeastOnce   = byte(1)
	MqttQos2ExactlyOnce = byte(2)
)

func WaitToken(t mqtt.Token) error {
	t.Wait()
	return t.Error()
}

// ResultNotification is published whenever an optimization result is stored,
// so dashboards and the watch command see new results without polling.
type ResultNotification struct {
	ResultID string          `json:"result_id"`
	Solver   string          `json:"solver"`
	Status   tl.SolverStatus `json:"status"`
}

type mqttNotifier struct {
	notificationCh chan ResultNotification
	address        string
	logl           *logex.Leveled
}

func newMqttNotifier(
	address string,
	start func(task func(context.Context) error),
	logger *log.Logger,
) *mqttNotifier {
	notificationCh := make(chan ResultNotification, 100)

	m := &mqttNotifier{
		notificationCh: notificationCh,
		address:        address,
		logl:           logex.Levels(logger),
	}

	start(func(ctx context.Context) error {
		return m.task(ctx)
	})

	return m
}

func (l *mqttNotifier) task(ctx context.Context) error {
	client, err := MqttClient(l.address, l.logl.Original)
	if err != nil {
		return err
	}
	defer client.Disconnect(250) // doesn't offer error status :O

	for {
		select {
		case <-ctx.Done():
			return nil
		case not := <-l.notificationCh:
			payload, err := json.Marshal(not)
			if err != nil {
				return err
			}

			if err := WaitToken(client.Publish(
				MqttTopicForSolver(not.Solver),
				MqttQos0AtMostOnce,
				false,
				payload,
			)); err != nil {
				return err
			}
		}
	}
}

func (l *mqttNotifier) NotifyResultStored(resultID string, solver string, status tl.SolverStatus) error {
	select {
	case l.notificationCh <- ResultNotification{
		ResultID: resultID,
		Solver:   solver,
		Status:   status,
	}: // non-blocking send
		return nil
	default:
		return fmt.Errorf(
			"NotifyResultStored: failed to queue notification for %s b/c queue is full",
			resultID)
	}
}

// teachload/results/greedy
func MqttTopicForSolver(solver string) string {
	return fmt.Sprintf("teachload/results/%s", solver)
}

// matches every solver's topic
func MqttTopicAllSolvers() string {
	return "teachload/results/+"
}

func MqttClient(address string, logger *log.Logger) (mqtt.Client, error) {
	logl := logex.Levels(logger)

	// brokers disconnect clients sharing an id, so randomize it
	clientId := fmt.Sprintf("teachload-%s", cryptoutil.RandBase64Url(8))

	opts := mqtt.NewClientOptions().
		AddBroker(address).
		SetClientID(clientId)
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logl.Error.Printf("connection lost: %v", err)
	}

	client := mqtt.NewClient(opts)

	if err := WaitToken(client.Connect()); err != nil {
		return nil, err
	}

	return client, nil
}
