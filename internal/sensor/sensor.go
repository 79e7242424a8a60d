// Package sensor reads a BME280 environmental sensor through the kernel IIO
// sysfs interface exposed by the bme280 driver.
package sensor

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/spf13/afero"
)

const (
	// DefaultRoot is where the kernel lists I2C client devices.
	DefaultRoot = "/sys/bus/i2c/devices"

	temperatureFile = "iio:device0/in_temp_input"
	humidityFile    = "iio:device0/in_humidityrelative_input"
	pressureFile    = "iio:device0/in_pressure_input"

	// delimiter terminates every value the driver writes.
	delimiter = '\n'
)

// Reader provides the three BME280 measurements.
type Reader interface {
	Temperature() (float32, error) // degrees C
	Humidity() (float32, error)    // relative humidity %
	Pressure() (float32, error)    // hPa
}

// Reading is one sample of all three measurements.
type Reading struct {
	TemperatureC float32
	HumidityPct  float32
	PressureHPa  float32
}

// Sample queries r for all three values, stopping at the first failure.
func Sample(r Reader) (Reading, error) {
	var (
		reading Reading
		err     error
	)
	if reading.TemperatureC, err = r.Temperature(); err != nil {
		return Reading{}, err
	}
	if reading.HumidityPct, err = r.Humidity(); err != nil {
		return Reading{}, err
	}
	if reading.PressureHPa, err = r.Pressure(); err != nil {
		return Reading{}, err
	}
	return reading, nil
}

// BME280 reads a BME280 bound to the bme280 IIO driver. It holds no mutable
// state and is safe for concurrent use.
type BME280 struct {
	fs   afero.Fs
	base string
}

// Option configures a BME280.
type Option func(*BME280)

// WithRoot overrides the sysfs directory holding I2C devices.
func WithRoot(root string) Option {
	return func(b *BME280) {
		b.base = path.Join(root, path.Base(b.base))
	}
}

// New returns a reader for the sensor at addr on I2C bus.
func New(fs afero.Fs, bus uint8, addr uint16, opts ...Option) *BME280 {
	b := &BME280{
		fs:   fs,
		base: path.Join(DefaultRoot, DevicePath(bus, addr)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DevicePath returns the sysfs device name for addr on bus, e.g. "1-0076".
func DevicePath(bus uint8, addr uint16) string {
	return fmt.Sprintf("%x-%04x", bus, addr)
}

// BasePath returns the sysfs directory of the device.
func (b *BME280) BasePath() string {
	return b.base
}

// Temperature returns degrees C. The driver reports millidegrees.
func (b *BME280) Temperature() (float32, error) {
	raw, err := b.readInt(temperatureFile)
	if err != nil {
		return 0, err
	}
	return float32(raw) / 1000, nil
}

// Humidity returns relative humidity in %. The driver reports milli-percent.
func (b *BME280) Humidity() (float32, error) {
	raw, err := b.readInt(humidityFile)
	if err != nil {
		return 0, err
	}
	return float32(raw) / 1000, nil
}

// Pressure returns hPa. The driver reports kPa.
func (b *BME280) Pressure() (float32, error) {
	s, err := b.readValue(pressureFile)
	if err != nil {
		return 0, err
	}
	raw, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrData,
			fmt.Sprintf("Unparseable value in %s", path.Join(b.base, pressureFile)), "")
	}
	return float32(raw) * 10, nil
}

func (b *BME280) readInt(name string) (int32, error) {
	s, err := b.readValue(name)
	if err != nil {
		return 0, err
	}
	raw, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrData,
			fmt.Sprintf("Unparseable value in %s", path.Join(b.base, name)), "")
	}
	return int32(raw), nil
}

// readValue returns the trimmed text of one sysfs attribute, read up to and
// including the delimiter.
func (b *BME280) readValue(name string) (string, error) {
	p := path.Join(b.base, name)
	f, err := b.fs.Open(p)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrIO,
			fmt.Sprintf("Cannot open %s", p),
			"Check that the bme280 driver is bound to the sensor")
	}
	defer f.Close()

	buf, err := bufio.NewReader(f).ReadBytes(delimiter)
	if err != nil && err != io.EOF {
		return "", errors.WrapWithCode(err, errors.ErrIO, fmt.Sprintf("Cannot read %s", p), "")
	}
	if !utf8.Valid(buf) {
		return "", errors.New(errors.ErrData, fmt.Sprintf("Value in %s is not valid text", p), "")
	}
	return strings.TrimSpace(string(buf)), nil
}
