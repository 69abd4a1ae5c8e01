package network

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peek-cli/peek/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestCurrent(t *testing.T) {
	Convey("Current should follow network.tls_fingerprint", t, func() {
		viper.Set(key.NetworkTLSFingerprint, false)
		So(Current(), ShouldEqual, Client)

		viper.Set(key.NetworkTLSFingerprint, true)
		So(Current(), ShouldEqual, FingerprintClient)

		viper.Set(key.NetworkTLSFingerprint, false)
	})
}

func TestFingerprintTransport(t *testing.T) {
	Convey("Given a plain http server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, "ok")
		}))
		defer srv.Close()

		Convey("The transport should pass non-TLS requests through", func() {
			client := &http.Client{Transport: NewFingerprintTransport()}
			res, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "ok")
		})
	})
}
