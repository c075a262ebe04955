package tlcli

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver"
	"github.com/spf13/cobra"
)

var (
	waitToken          = tlserver.WaitToken
	mqttClient         = tlserver.MqttClient
	mqttQos0AtMostOnce = tlserver.MqttQos0AtMostOnce
)

func watchEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [solver]",
		Short: "Subscribe to solve notifications (also works as connectivity check)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			solverKey := ""
			if len(args) == 1 {
				solverKey = args[0]
			}

			osutil.ExitIfError(mqttWatch(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				solverKey,
				rootLogger))
		},
	}
}

func mqttWatch(ctx context.Context, solverKey string, logger *log.Logger) error {
	logl := logex.Levels(logger)

	_, conf, err := loadEnvConfig()
	if err != nil {
		return err
	}

	if conf.MQTTAddress == "" {
		return errors.New("no mqtt_address configured")
	}

	client, err := mqttClient(conf.MQTTAddress, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(250) // doesn't offer error status :O

	topic := tlserver.MqttTopicAllSolvers()
	if solverKey != "" {
		topic = tlserver.MqttTopicForSolver(solverKey)
	}

	incomingMsg := make(chan tlserver.ResultNotification)

	if err := waitToken(client.Subscribe(topic, mqttQos0AtMostOnce, func(_ mqtt.Client, msg mqtt.Message) {
		notification := tlserver.ResultNotification{}
		if err := json.Unmarshal(msg.Payload(), &notification); err != nil {
			logl.Error.Printf("Unmarshal: %v", err)
			return
		}

		incomingMsg <- notification
	})); err != nil {
		return err
	}

	logl.Info.Printf("subscribed to %s; waiting for msg", topic)

	for {
		select {
		case <-ctx.Done():
			logl.Info.Println("graceful exit")
			return nil
		case notification := <-incomingMsg:
			logl.Info.Printf("%s stored (%s)", notification.ResultID, notification.Status)
		}
	}
}
