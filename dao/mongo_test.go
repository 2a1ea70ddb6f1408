package dao

import (
	"context"
	"testing"
	"time"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/config"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"go.mongodb.org/mongo-driver/mongo"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitCreateRefund(t *testing.T) {
	Convey("Create Refund", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		refund := models.RefundDB{RefundID: "refund123"}
		err := dao.CreateRefund(context.Background(), &refund)
		So(err.Error(), ShouldContainSubstring, "Deployment")
	})
}

func TestUnitFindRefundsByStatusAndCutoff(t *testing.T) {
	Convey("Find Refunds By Status And Cutoff", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		refunds, err := dao.FindRefundsByStatusAndCutoff(context.Background(), models.RefundStatusProcessing, time.Now())
		So(refunds, ShouldBeNil)
		So(err.Error(), ShouldEqual, "the Find operation must have a Deployment set before Execute can be called")
	})
}

func TestUnitSaveRefund(t *testing.T) {
	Convey("Save Refund", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		refund := models.RefundDB{RefundID: "refund123", Version: 3}
		err := dao.SaveRefund(context.Background(), &refund)
		So(err.Error(), ShouldContainSubstring, "Deployment")
		So(refund.Version, ShouldEqual, 3)
	})
}

func TestUnitFindWebhooksDueForRetry(t *testing.T) {
	Convey("Find Webhooks Due For Retry", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		notifications, err := dao.FindWebhooksDueForRetry(context.Background(), time.Now())
		So(notifications, ShouldBeNil)
		So(err.Error(), ShouldEqual, "the Find operation must have a Deployment set before Execute can be called")
	})
}

func TestUnitSaveWebhook(t *testing.T) {
	Convey("Save Webhook", t, func() {
		cfg, _ := config.Get()
		client = &mongo.Client{}
		dao := NewDAO(cfg)

		notification := models.WebhookNotification{ID: "webhook123", Version: 1}
		err := dao.SaveWebhook(context.Background(), &notification)
		So(err.Error(), ShouldContainSubstring, "Deployment")
		So(notification.Version, ShouldEqual, 1)
	})
}
