/*
 * Command set follows the AHT10 family, which the AHT20 accepts. Measurement
 * frames carry a trailing CRC-8 (poly 0x31, init 0xFF) over the first six bytes.
 */
package aht20

import (
	"context"
	"io"
	"time"

	"github.com/d2r2/go-i2c"
	"github.com/pkg/errors"
	"github.com/sigurn/crc8"

	"psychrometric-calculator/units"
)

const frameLength = 7

var checksumTable = crc8.MakeTable(crc8.Params{
	Poly:   0x31,
	Init:   0xFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
	Check:  0x00,
	Name:   "CRC-8/AHT20",
})

func reset(ctx context.Context, i2c *i2c.I2C) error {
	const cmd_reset byte = 0xBA
	_, err := i2c.WriteBytes([]byte{cmd_reset})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-time.After(wakeUpTimeout):
	}

	return nil
}

type statusResponse struct {
	IsCalibrated bool
	IsBusy       bool
}

func parseStatus(b byte) *statusResponse {
	const calibratedMask byte = 0b00001000
	const busyMask byte = 0b10000000

	return &statusResponse{
		IsCalibrated: b&calibratedMask > 0,
		IsBusy:       b&busyMask > 0,
	}
}

func status(i2c *i2c.I2C) (*statusResponse, error) {
	buf := make([]byte, 1)
	_, err := i2c.ReadBytes(buf)
	if err != nil {
		return nil, err
	}

	return parseStatus(buf[0]), nil
}

// waitWhileBusy polls the status register until the sensor is idle. It
// returns io.EOF when the context ends first.
func waitWhileBusy(ctx context.Context, i2c *i2c.I2C) (*statusResponse, error) {
	for {
		status, err := status(i2c)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read status")
		}

		if !status.IsBusy {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return nil, io.EOF
		case <-time.After(statusTimeout):
		}
	}
}

func calibrate(ctx context.Context, i2c *i2c.I2C) error {
	const cmd_calibrate byte = 0xE1
	_, err := i2c.WriteBytes([]byte{cmd_calibrate, 0x08, 0x00})
	if err != nil {
		return err
	}

	status, err := waitWhileBusy(ctx, i2c)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	if !status.IsCalibrated {
		return errors.New("failed to calibrate sensor")
	}

	return nil
}

func trigger(ctx context.Context, i2c *i2c.I2C) (*Reading, error) {
	const cmd_trigger byte = 0xAC
	_, err := i2c.WriteBytes([]byte{cmd_trigger, 0x33, 0x00})
	if err != nil {
		return nil, err
	}

	_, err = waitWhileBusy(ctx, i2c)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, frameLength)
	_, err = i2c.ReadBytes(buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read measurement")
	}

	return decode(buf)
}

func decode(buf []byte) (*Reading, error) {
	if len(buf) != frameLength {
		return nil, errors.Errorf("expected %d byte frame, got %d", frameLength, len(buf))
	}

	crc := crc8.Checksum(buf[:frameLength-1], checksumTable)
	if crc != buf[frameLength-1] {
		return nil, errors.Errorf("checksum mismatch: computed %#02x, received %#02x", crc, buf[frameLength-1])
	}

	if parseStatus(buf[0]).IsBusy {
		return nil, errors.New("measurement frame read while sensor busy")
	}

	/*
	 * buf index 0       1       2       3       4       5       6
	 *           |-------|-------|-------|-------|-------|-------|-------
	 * category  SSSSSSSSHHHHHHHHHHHHHHHHHHHHTTTTTTTTTTTTTTTTTTTTCCCCCCCC
	 *
	 * S: State (8 bits)
	 * H: Humidity (20 bits)
	 * T: Temperature (20 bits)
	 * C: CRC (8 bits)
	 */

	rawHumidity := uint32(buf[1])<<12 | uint32(buf[2])<<4 | uint32(buf[3])>>4
	humidity := units.RelativeHumidity(rawHumidity) * 100 / 0x100000

	rawTemperature := uint32(buf[3]&0xF)<<16 | uint32(buf[4])<<8 | uint32(buf[5])
	temperature := units.Celsius(rawTemperature)*200/0x100000 - 50

	return &Reading{
		Humidity:    humidity,
		Temperature: temperature,
	}, nil
}
